package profile

import (
	"bytes"
	"testing"

	"github.com/arloliu/sitab/format"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx, err := New()
	require.NoError(t, err)
	require.Zero(t, ctx.Standards())
	require.False(t, ctx.UsesJST())

	ctx, err = New(WithStandards(format.StandardDVB), WithStandardNames("isdb", "japan"))
	require.NoError(t, err)
	require.True(t, ctx.Standards().Has(format.StandardDVB|format.StandardISDB))
	require.True(t, ctx.UsesJST())

	_, err = New(WithStandardNames("secam"))
	require.Error(t, err)
}

func TestContext_Logger(t *testing.T) {
	var out bytes.Buffer
	ctx, err := New(WithLogger(zerolog.New(&out)))
	require.NoError(t, err)

	ctx.Logger().Warn().Int("dropped", 2).Msg("descriptors truncated")
	require.Contains(t, out.String(), `"dropped":2`)
}

func TestContext_Nil(t *testing.T) {
	var ctx *Context
	require.Zero(t, ctx.Standards())
	require.False(t, ctx.UsesJST())
	ctx.AddStandards(format.StandardJapan)
	ctx.Logger().Info().Msg("discarded")
}
