package descriptor

import (
	"sync"

	"github.com/arloliu/sitab/profile"
	"github.com/beevik/etree"
)

// Typed is a descriptor with a structured in-memory form.
type Typed interface {
	// Tag returns the descriptor tag.
	Tag() uint8
	// XMLName returns the name of the XML element representing the descriptor.
	XMLName() string
	// Serialize encodes the descriptor.
	Serialize(ctx *profile.Context) (Descriptor, error)
	// Deserialize decodes d, which must carry the descriptor's tag.
	Deserialize(ctx *profile.Context, d Descriptor) error
	// BuildXML fills el, an element named XMLName().
	BuildXML(ctx *profile.Context, el *etree.Element)
	// AnalyzeXML loads the descriptor from el.
	AnalyzeXML(ctx *profile.Context, el *etree.Element) error
}

type registration struct {
	tag        uint8
	xmlName    string
	minPayload int
	factory    func() Typed
}

var (
	registryMu sync.RWMutex
	byTag      = map[uint8]registration{}
	byXMLName  = map[string]registration{}
)

// Register makes a typed descriptor known by tag and XML name. Registering
// the same tag or name twice replaces the previous entry.
func Register(tag uint8, xmlName string, minPayload int, factory func() Typed) {
	registryMu.Lock()
	defer registryMu.Unlock()

	r := registration{tag: tag, xmlName: xmlName, minPayload: minPayload, factory: factory}
	byTag[tag] = r
	byXMLName[xmlName] = r
}

// NewByTag returns a new typed descriptor for tag.
func NewByTag(tag uint8) (Typed, bool) {
	registryMu.RLock()
	r, ok := byTag[tag]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}

	return r.factory(), true
}

// NewByXMLName returns a new typed descriptor for an XML element name.
func NewByXMLName(name string) (Typed, bool) {
	registryMu.RLock()
	r, ok := byXMLName[name]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}

	return r.factory(), true
}

// MinPayloadSize returns the minimum payload size registered for tag, zero
// for unknown tags.
func MinPayloadSize(tag uint8) int {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return byTag[tag].minPayload
}
