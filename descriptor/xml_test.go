package descriptor

import (
	"testing"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/profile"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func TestListXML_RoundTrip(t *testing.T) {
	ctx := profile.Default()

	var list List
	require.NoError(t, list.Add(Descriptor{Tag: 0x83, Payload: []byte{0x01, 0xAB, 0xFF}}))
	require.NoError(t, list.AddTyped(ctx, &LocalTimeOffset{Regions: makeRegions(2)}))
	require.NoError(t, list.Add(Descriptor{Tag: 0x90}))

	doc := etree.NewDocument()
	root := doc.CreateElement("table")
	list.ToXML(ctx, root)

	children := root.ChildElements()
	require.Len(t, children, 3)
	require.Equal(t, GenericXMLName, children[0].Tag)
	require.Equal(t, "0x83", children[0].SelectAttrValue("tag", ""))
	require.Equal(t, "01 AB FF", children[0].Text())
	require.Equal(t, LocalTimeOffsetXMLName, children[1].Tag)
	require.Equal(t, GenericXMLName, children[2].Tag)

	var got List
	require.NoError(t, got.FromXML(ctx, root.ChildElements()))
	require.True(t, got.Equal(&list))
}

func TestListXML_UndecodableTypedIsGeneric(t *testing.T) {
	doc := etree.NewDocument()
	root := doc.CreateElement("table")
	el := BuildXML(nil, root, Descriptor{Tag: format.DIDLocalTimeOffset, Payload: []byte{1, 2}})
	require.Equal(t, GenericXMLName, el.Tag)
	require.Equal(t, "0x58", el.SelectAttrValue("tag", ""))
}

func TestListXML_Errors(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		err  error
	}{
		{name: "unknown element", xml: `<t><foo_descriptor/></t>`, err: errs.ErrUnexpectedElement},
		{name: "missing tag", xml: `<t><generic_descriptor>01</generic_descriptor></t>`, err: errs.ErrMissingAttribute},
		{name: "tag range", xml: `<t><generic_descriptor tag="0x100"/></t>`, err: errs.ErrAttributeRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := etree.NewDocument()
			require.NoError(t, doc.ReadFromString(tt.xml))

			var l List
			require.ErrorIs(t, l.FromXML(nil, doc.Root().ChildElements()), tt.err)
		})
	}
}

func TestListXML_Skip(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<t><metadata/><generic_descriptor tag="0x40">00</generic_descriptor></t>`))

	var l List
	require.NoError(t, l.FromXML(nil, doc.Root().ChildElements(), "metadata"))
	require.Equal(t, 1, l.Len())
}
