package descriptor

import (
	"fmt"
	"slices"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/internal/xmlattr"
	"github.com/arloliu/sitab/profile"
	"github.com/beevik/etree"
)

// GenericXMLName is the element name of descriptors kept as raw payload.
const GenericXMLName = "generic_descriptor"

// BuildXML appends the XML form of d to parent. Registered descriptors that
// decode are written in their typed form, anything else as a
// generic_descriptor.
func BuildXML(ctx *profile.Context, parent *etree.Element, d Descriptor) *etree.Element {
	if t, ok := NewByTag(d.Tag); ok {
		err := t.Deserialize(ctx, d)
		if err == nil {
			el := parent.CreateElement(t.XMLName())
			t.BuildXML(ctx, el)

			return el
		}
		ctx.Logger().Debug().Err(err).Uint8("tag", d.Tag).Msg("descriptor written as generic_descriptor")
	}

	el := parent.CreateElement(GenericXMLName)
	xmlattr.SetHex(el, "tag", d.Tag, 2)
	xmlattr.SetHexText(el, d.Payload)

	return el
}

// AnalyzeXML converts one descriptor element into its binary form.
func AnalyzeXML(ctx *profile.Context, el *etree.Element) (Descriptor, error) {
	if el.Tag == GenericXMLName {
		tag, err := xmlattr.GetInt[uint8](el, "tag", true, 0, 0, 0xFF)
		if err != nil {
			return Descriptor{}, err
		}
		payload, err := xmlattr.HexText(el)
		if err != nil {
			return Descriptor{}, err
		}

		return New(tag, payload)
	}

	t, ok := NewByXMLName(el.Tag)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: <%s> is not a known descriptor", errs.ErrUnexpectedElement, el.Tag)
	}
	if err := t.AnalyzeXML(ctx, el); err != nil {
		return Descriptor{}, err
	}

	return t.Serialize(ctx)
}

// ToXML appends one element per descriptor to parent.
func (l *List) ToXML(ctx *profile.Context, parent *etree.Element) {
	for _, d := range l.descs {
		BuildXML(ctx, parent, d)
	}
}

// FromXML appends the descriptors of the given elements. Elements named in
// skip are ignored, so tables can mix their own children with descriptors.
func (l *List) FromXML(ctx *profile.Context, elements []*etree.Element, skip ...string) error {
	for _, el := range elements {
		if slices.Contains(skip, el.Tag) {
			continue
		}
		d, err := AnalyzeXML(ctx, el)
		if err != nil {
			return err
		}
		l.descs = append(l.descs, d)
	}

	return nil
}
