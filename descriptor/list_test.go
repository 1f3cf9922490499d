package descriptor

import (
	"bytes"
	"testing"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/psibuf"
	"github.com/stretchr/testify/require"
)

func mustDesc(t *testing.T, tag uint8, size int) Descriptor {
	t.Helper()
	d, err := New(tag, bytes.Repeat([]byte{tag}, size))
	require.NoError(t, err)

	return d
}

func TestNew(t *testing.T) {
	d, err := New(0x48, []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 5, d.Size())
	require.True(t, d.IsValid())
	require.Equal(t, []byte{0x48, 3, 1, 2, 3}, d.Bytes())

	d, err = New(0x48, nil)
	require.NoError(t, err)
	require.Nil(t, d.Payload)
	require.Equal(t, []byte{0x48, 0}, d.Bytes())

	_, err = New(0x48, make([]byte, MaxPayloadSize+1))
	require.ErrorIs(t, err, errs.ErrDescriptorTooLarge)
}

func TestList_Basics(t *testing.T) {
	var l List
	require.Zero(t, l.Len())
	require.Zero(t, l.BinarySize())

	require.NoError(t, l.Add(mustDesc(t, 0x40, 4)))
	require.NoError(t, l.Add(mustDesc(t, 0x58, 13)))
	require.NoError(t, l.Add(mustDesc(t, 0x40, 1)))
	require.Error(t, l.Add(Descriptor{Tag: 0x40, Payload: make([]byte, 300)}))

	require.Equal(t, 3, l.Len())
	require.Equal(t, 6+15+3, l.BinarySize())
	require.Equal(t, 1, l.Search(0x58, 0))
	require.Equal(t, 2, l.Search(0x40, 1))
	require.Equal(t, 3, l.Search(0x99, 0))

	tags := []uint8{}
	for _, d := range l.All() {
		tags = append(tags, d.Tag)
	}
	require.Equal(t, []uint8{0x40, 0x58, 0x40}, tags)

	var other List
	other.AddList(&l)
	require.True(t, other.Equal(&l))

	l.Clear()
	require.Zero(t, l.Len())
	require.False(t, other.Equal(&l))
}

func TestList_ReadWriteRoundTrip(t *testing.T) {
	var l List
	require.NoError(t, l.Add(mustDesc(t, 0x40, 4)))
	require.NoError(t, l.Add(mustDesc(t, 0x41, 0)))
	require.NoError(t, l.Add(mustDesc(t, 0x42, 255)))

	w := psibuf.NewWriter(make([]byte, l.BinarySize()))
	next, size := l.WritePartial(w, 0)
	require.Equal(t, 3, next)
	require.Equal(t, l.BinarySize(), size)
	require.NoError(t, w.Err())

	var got List
	r := psibuf.NewReader(w.Bytes())
	got.ReadAll(r)
	require.NoError(t, r.Validate())
	require.True(t, got.Equal(&l))
	require.Equal(t, l, got)
}

func TestList_ReadStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		length int
	}{
		{name: "payload crosses loop end", data: []byte{0x40, 0x05, 1, 2, 3}, length: 5},
		{name: "stray header byte", data: []byte{0x40, 0x00, 0x41}, length: 3},
		{name: "loop longer than buffer", data: []byte{0x40, 0x00}, length: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l List
			buf := psibuf.NewReader(tt.data)
			l.Read(buf, tt.length)
			require.ErrorIs(t, buf.Err(), errs.ErrInvalidDescriptor)
		})
	}
}

func TestList_ReadWithLength(t *testing.T) {
	data := []byte{0xF0, 0x05, 0x40, 0x03, 0xAA, 0xBB, 0xCC, 0x99}
	buf := psibuf.NewReader(data)

	var l List
	l.ReadWithLength(buf)
	require.NoError(t, buf.Err())
	require.Equal(t, 1, l.Len())
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, l.At(0).Payload)
	require.Equal(t, uint8(0x99), buf.GetUInt8())
	require.NoError(t, buf.Validate())
}

func TestList_WritePartialStopsOnBoundary(t *testing.T) {
	var l List
	for range 4 {
		require.NoError(t, l.Add(mustDesc(t, 0x40, 8))) // 10 bytes each
	}

	buf := psibuf.NewWriter(make([]byte, 25))
	next, size := l.WritePartial(buf, 0)
	require.Equal(t, 2, next)
	require.Equal(t, 20, size)
	require.Equal(t, 5, buf.RemainingBytes())
	require.NoError(t, buf.Err())

	buf = psibuf.NewWriter(make([]byte, 25))
	next, size = l.WritePartial(buf, 2)
	require.Equal(t, 4, next)
	require.Equal(t, 20, size)
}

func TestList_WritePartialWithLength(t *testing.T) {
	var l List
	for range 3 {
		require.NoError(t, l.Add(mustDesc(t, 0x40, 3))) // 5 bytes each
	}

	buf := psibuf.NewWriter(make([]byte, 2+12))
	next, size := l.WritePartialWithLength(buf, 0)
	require.Equal(t, 2, next)
	require.Equal(t, 10, size)

	out := buf.Bytes()
	require.Len(t, out, 12)
	require.Equal(t, []byte{0xF0, 0x0A}, out[:2], "length covers only written descriptors")

	var got List
	r := psibuf.NewReader(out)
	got.ReadWithLength(r)
	require.NoError(t, r.Validate())
	require.Equal(t, 2, got.Len())

	buf = psibuf.NewWriter(make([]byte, 1))
	next, size = l.WritePartialWithLength(buf, 0)
	require.Zero(t, next)
	require.Zero(t, size)
	require.ErrorIs(t, buf.Err(), errs.ErrBufferOverflow)
}
