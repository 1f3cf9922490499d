package tables

import (
	"fmt"

	"github.com/arloliu/sitab/errs"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/psibuf"
	"github.com/arloliu/sitab/section"
	"github.com/beevik/etree"
)

// State is the lifecycle state of a table.
type State uint8

const (
	// StateEmpty is the state of a new or cleared table.
	StateEmpty State = iota
	// StatePopulated is the state after a successful decode.
	StatePopulated
	// StateInvalid is the state after a failed decode. All fields are cleared.
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Table is one SI table.
type Table interface {
	// TableID returns the table id.
	TableID() uint8
	// XMLName returns the name of the XML element representing the table.
	XMLName() string
	// DefiningStandards returns the standards defining the table.
	DefiningStandards() format.Standards

	// State returns the lifecycle state.
	State() State
	// IsValid reports whether the table is not Invalid.
	IsValid() bool
	// Clear resets all fields and returns to Empty.
	Clear()

	// SectionHeader returns the header of the section carrying the table.
	SectionHeader() section.Header
	// SetSectionHeader loads the header fields of a received section.
	SetSectionHeader(h section.Header)

	// Deserialize decodes a whole section payload from buf.
	Deserialize(ctx *profile.Context, buf *psibuf.Buffer) error
	// Serialize encodes the table into buf, whose capacity is the section
	// payload capacity.
	Serialize(ctx *profile.Context, buf *psibuf.Buffer) error
	// BuildXML fills el, an element named XMLName().
	BuildXML(ctx *profile.Context, el *etree.Element)
	// AnalyzeXML loads the table from el.
	AnalyzeXML(ctx *profile.Context, el *etree.Element) error
}

// base holds the lifecycle state shared by all tables.
type base struct {
	state State
}

// State returns the lifecycle state.
func (b *base) State() State {
	return b.state
}

// IsValid reports whether the table is not Invalid.
func (b *base) IsValid() bool {
	return b.state != StateInvalid
}

// finish moves to Populated, or clears the table and moves to Invalid when
// err is not nil.
func (b *base) finish(name string, err error, clear func()) error {
	if err != nil {
		clear()
		b.state = StateInvalid

		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidTable, name, err)
	}
	b.state = StatePopulated

	return nil
}

func (b *base) checkSerializable(name string) error {
	if b.state == StateInvalid {
		return fmt.Errorf("%w: cannot serialize invalid %s", errs.ErrInvalidTable, name)
	}

	return nil
}
