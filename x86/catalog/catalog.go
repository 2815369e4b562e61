// This file is part of x86dsm.
//
// x86dsm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// x86dsm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with x86dsm.  If not, see <https://www.gnu.org/licenses/>.

package catalog

import (
	"fmt"
	"io"
)

// Catalog is the ordered list of instruction descriptors. The order of the
// descriptors is significant: the first descriptor that matches an opcode is
// the one used.
//
// A Catalog is never changed after it has been created and is safe to share
// between goroutines.
type Catalog struct {
	descriptors []Descriptor
}

// New creates a Catalog from a list of descriptors. The list is copied and
// the Row field of each descriptor is set to its position in the list.
func New(descriptors []Descriptor) *Catalog {
	cat := &Catalog{
		descriptors: make([]Descriptor, len(descriptors)),
	}
	copy(cat.descriptors, descriptors)
	for i := range cat.descriptors {
		cat.descriptors[i].Row = i
	}
	return cat
}

// Len returns the number of descriptors in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.descriptors)
}

// Descriptors returns a copy of the descriptors in catalog order.
func (cat *Catalog) Descriptors() []Descriptor {
	d := make([]Descriptor, len(cat.descriptors))
	copy(d, cat.descriptors)
	return d
}

// Write a listing of the catalog to io.Writer, one descriptor per line.
func (cat *Catalog) Write(output io.Writer) {
	for i := range cat.descriptors {
		output.Write([]byte(fmt.Sprintf("%4d  %s\n", i, cat.descriptors[i].String())))
	}
}
