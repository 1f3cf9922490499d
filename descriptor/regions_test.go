package descriptor

import (
	"fmt"
	"testing"

	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/profile"
	"github.com/stretchr/testify/require"
)

func makeRegions(n int) []Region {
	var out []Region
	for i := range n {
		out = append(out, Region{
			CountryCode:    fmt.Sprintf("C%02d", i%100),
			RegionID:       uint8(i % 64), //nolint:gosec // G115: i%64
			TimeOffset:     i,
			TimeOfChange:   changeTime,
			NextTimeOffset: i + 60,
		})
	}

	return out
}

func TestPackRegions(t *testing.T) {
	for _, n := range []int{0, 1, 18, 19, 20, 38} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			regions := makeRegions(n)
			chunks := PackRegions(regions)

			require.Len(t, chunks, (n+MaxRegions-1)/MaxRegions)
			for i, c := range chunks {
				if i < len(chunks)-1 {
					require.Len(t, c.Regions, MaxRegions)
				} else {
					require.NotEmpty(t, c.Regions)
					require.LessOrEqual(t, len(c.Regions), MaxRegions)
				}
			}
			require.Equal(t, regions, UnpackRegions(chunks))
		})
	}
}

func TestSplitRegions(t *testing.T) {
	ctx := profile.Default()
	regions := makeRegions(25)

	var list List
	require.NoError(t, list.Add(mustDesc(t, 0x40, 2)))
	require.NoError(t, list.AddTyped(ctx, &LocalTimeOffset{Regions: regions[:19]}))
	require.NoError(t, list.Add(mustDesc(t, 0x41, 3)))
	require.NoError(t, list.AddTyped(ctx, &LocalTimeOffset{Regions: regions[19:]}))
	broken := Descriptor{Tag: format.DIDLocalTimeOffset, Payload: make([]byte, 7)}
	require.NoError(t, list.Add(broken))

	gotRegions, others := SplitRegions(ctx, &list)
	require.Equal(t, regions, gotRegions)
	require.Equal(t, 3, others.Len())
	require.Equal(t, uint8(0x40), others.At(0).Tag)
	require.Equal(t, uint8(0x41), others.At(1).Tag)
	require.True(t, others.At(2).Equal(broken))
}

func TestJoinRegions(t *testing.T) {
	ctx := profile.Default()
	regions := makeRegions(20)

	var others List
	require.NoError(t, others.Add(mustDesc(t, 0x40, 2)))

	list, err := JoinRegions(ctx, regions, &others)
	require.NoError(t, err)
	require.Equal(t, 3, list.Len())
	require.Equal(t, format.DIDLocalTimeOffset, list.At(0).Tag)
	require.Len(t, list.At(0).Payload, MaxRegions*RegionSize)
	require.Len(t, list.At(1).Payload, RegionSize)
	require.Equal(t, uint8(0x40), list.At(2).Tag)

	gotRegions, gotOthers := SplitRegions(ctx, &list)
	require.Equal(t, regions, gotRegions)
	require.True(t, gotOthers.Equal(&others))
}
