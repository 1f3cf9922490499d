// Package descriptor implements SI descriptors and descriptor lists.
//
// A Descriptor is an opaque tagged byte-run (tag, length, payload). A List
// keeps descriptors in wire order and reads or writes them through a
// psibuf.Buffer. Writing is partial by contract: WritePartial and
// WritePartialWithLength stop at the last whole descriptor that fits and
// report where they stopped, so a capacity-bounded table can decide what to do
// with the rest.
//
// Typed descriptors implement the Typed interface and are registered by tag
// and XML name. Descriptors whose tag is not registered, or whose payload does
// not decode, are represented in XML as generic_descriptor elements carrying
// the raw payload in hexadecimal.
//
// The local_time_offset_descriptor carries up to MaxRegions Region entries.
// PackRegions, UnpackRegions and SplitRegions convert between one logical
// region sequence and any number of such descriptors.
package descriptor
