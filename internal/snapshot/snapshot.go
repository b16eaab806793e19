// This file is part of c64core.
//
// c64core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// c64core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with c64core.  If not, see <https://www.gnu.org/licenses/>.

// Package snapshot implements the core's save-state format: a magic/version
// header followed by each component's fields, encoded in the order each
// component declares its own descriptor table. Fields tagged
// ClearOnReset are still captured in a snapshot but are skipped when the
// descriptor is instead used to drive a power-on reset, so a snapshot of a
// running machine can be replayed, while a RESET keeps KeepOnReset state
// (RAM contents, disk media) and clears CPU/chip working state.
package snapshot

import (
	"encoding/binary"
	"encoding/gob"
	"io"
	"reflect"

	"github.com/retrosys/c64core/internal/curated"
)

const (
	magic         = uint32(0xc64c0de5)
	formatVersion = uint16(1)
)

// ErrBadMagic is returned when a byte stream does not begin with this
// package's snapshot magic number.
var ErrBadMagic = curated.Errorf("snapshot: bad magic number")

// ErrVersionMismatch is returned when a snapshot's format version is newer
// or older than this package understands; rejected before any field is
// consumed, per the documented error-handling policy.
var ErrVersionMismatch = curated.Errorf("snapshot: version mismatch")

// ResetPolicy marks whether a descriptor's field survives a RESET
// (KeepOnReset — RAM, disk media, mounted cartridge) or is reinitialized
// to its zero value (ClearOnReset — CPU registers, chip timers, raster
// position).
type ResetPolicy int

const (
	ClearOnReset ResetPolicy = iota
	KeepOnReset
)

// Field is one named, independently (de)serializable piece of component
// state — the {pointer, size, flag} descriptor entry the core specification
// names, generalized to a typed pointer plus a gob-encoded payload instead
// of a raw byte span, since component state here is richer than a flat
// struct copy.
type Field struct {
	Name   string
	Value  interface{} // must be a pointer, so Decode can write back through it
	Policy ResetPolicy
}

// Descriptor is the ordered list of fields one component contributes to a
// snapshot.
type Descriptor struct {
	Component string
	Fields    []Field
}

// Writer accumulates descriptors from every component, in the order they
// were added, and encodes them as one snapshot.
type Writer struct {
	descriptors []Descriptor
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) Add(d Descriptor) { w.descriptors = append(w.descriptors, d) }

// Encode writes the magic/version header followed by each field's
// gob-encoded value, in declaration order.
func (w *Writer) Encode(out io.Writer) error {
	if err := binary.Write(out, binary.BigEndian, magic); err != nil {
		return curated.Errorf("snapshot: writing magic: %v", err)
	}
	if err := binary.Write(out, binary.BigEndian, formatVersion); err != nil {
		return curated.Errorf("snapshot: writing version: %v", err)
	}
	enc := gob.NewEncoder(out)
	for _, d := range w.descriptors {
		for _, f := range d.Fields {
			if err := enc.Encode(f.Value); err != nil {
				return curated.Errorf("snapshot: encoding %s.%s: %v", d.Component, f.Name, err)
			}
		}
	}
	return nil
}

// Decode reads a snapshot previously produced by Encode back into the
// same pointers the descriptors were built with (the caller must supply a
// Writer built from fresh, decodable pointers before calling Decode).
func Decode(in io.Reader, descriptors []Descriptor) error {
	var gotMagic uint32
	if err := binary.Read(in, binary.BigEndian, &gotMagic); err != nil {
		return curated.Errorf("snapshot: reading magic: %v", err)
	}
	if gotMagic != magic {
		return ErrBadMagic
	}
	var version uint16
	if err := binary.Read(in, binary.BigEndian, &version); err != nil {
		return curated.Errorf("snapshot: reading version: %v", err)
	}
	if version != formatVersion {
		return ErrVersionMismatch
	}
	dec := gob.NewDecoder(in)
	for _, d := range descriptors {
		for _, f := range d.Fields {
			if err := dec.Decode(f.Value); err != nil {
				return curated.Errorf("snapshot: decoding %s.%s: %v", d.Component, f.Name, err)
			}
		}
	}
	return nil
}

// ApplyReset zeroes every ClearOnReset field's pointee and leaves
// KeepOnReset fields untouched, implementing the RESET-vs-power-on-clear
// distinction the core specification draws between a soft reset and a
// fresh snapshot load.
func ApplyReset(descriptors []Descriptor) {
	for _, d := range descriptors {
		for _, f := range d.Fields {
			if f.Policy != ClearOnReset {
				continue
			}
			zeroPointee(f.Value)
		}
	}
}

// zeroPointee overwrites *ptr with its zero value in place. ptr must be a
// non-nil pointer, which every Field.Value is required to be.
func zeroPointee(ptr interface{}) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	elem := rv.Elem()
	elem.Set(reflect.Zero(elem.Type()))
}
