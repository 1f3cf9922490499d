package tables

import (
	"sync"

	"github.com/arloliu/sitab/format"
)

// Registration describes a table type.
type Registration struct {
	TableID   uint8
	XMLName   string
	Standards format.Standards
	// Long is set for tables carried in long sections.
	Long bool
	// ShortCRC is set for short-section tables ending with a CRC32.
	ShortCRC bool
	New      func() Table
}

var (
	registryMu sync.RWMutex
	byTableID  = map[uint8]Registration{}
	byXMLName  = map[string]Registration{}
)

// Register makes a table type known by table id and XML name.
func Register(r Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	byTableID[r.TableID] = r
	byXMLName[r.XMLName] = r
}

// Lookup returns the registration of a table id.
func Lookup(tableID uint8) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := byTableID[tableID]

	return r, ok
}

// LookupXML returns the registration of an XML element name.
func LookupXML(name string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	r, ok := byXMLName[name]

	return r, ok
}

// ShortCRC reports whether short sections of a table id end with a CRC32.
// It is a section.ShortCRCFunc.
func ShortCRC(tableID uint8) bool {
	r, ok := Lookup(tableID)
	return ok && r.ShortCRC
}
