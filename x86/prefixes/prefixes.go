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

// Package prefixes identifies the legacy prefix bytes that can precede an x86
// opcode.
package prefixes

import (
	"strings"

	"github.com/x86dsm/x86dsm/x86/operands"
)

// Prefix byte values.
const (
	Lock        uint8 = 0xf0
	Rep         uint8 = 0xf3
	RepNE       uint8 = 0xf2
	CS          uint8 = 0x2e
	SS          uint8 = 0x36
	DS          uint8 = 0x3e
	ES          uint8 = 0x26
	FS          uint8 = 0x64
	GS          uint8 = 0x65
	OperandSize uint8 = 0x66
	AddressSize uint8 = 0x67
)

// TwoByteEscape is the opcode byte that selects the two-byte opcode map. It
// is not a prefix.
const TwoByteEscape uint8 = 0x0f

// Prefix describes a single legacy prefix.
type Prefix struct {
	Byte     uint8
	Mnemonic string

	// the segment selected by a segment override prefix. SegNone for all
	// other prefixes
	Segment operands.Segment
}

func (p Prefix) String() string {
	return p.Mnemonic
}

// IsSegmentOverride returns true if the prefix is one of the six segment
// override prefixes.
func (p Prefix) IsSegmentOverride() bool {
	return p.Segment != operands.SegNone
}

var table = map[uint8]Prefix{
	Lock:        {Byte: Lock, Mnemonic: "LOCK"},
	Rep:         {Byte: Rep, Mnemonic: "REP"},
	RepNE:       {Byte: RepNE, Mnemonic: "REPNE"},
	CS:          {Byte: CS, Mnemonic: "CS", Segment: operands.CS},
	SS:          {Byte: SS, Mnemonic: "SS", Segment: operands.SS},
	DS:          {Byte: DS, Mnemonic: "DS", Segment: operands.DS},
	ES:          {Byte: ES, Mnemonic: "ES", Segment: operands.ES},
	FS:          {Byte: FS, Mnemonic: "FS", Segment: operands.FS},
	GS:          {Byte: GS, Mnemonic: "GS", Segment: operands.GS},
	OperandSize: {Byte: OperandSize, Mnemonic: "OO-16"},
	AddressSize: {Byte: AddressSize, Mnemonic: "AO-16"},
}

// Lookup returns the Prefix for the byte value. Returns false if the byte is
// not a legacy prefix.
func Lookup(b uint8) (Prefix, bool) {
	p, ok := table[b]
	return p, ok
}

// Prefixes is the list of prefixes in the order they were encountered.
type Prefixes []Prefix

// Has returns true if the prefix byte is in the list.
func (ps Prefixes) Has(b uint8) bool {
	for _, p := range ps {
		if p.Byte == b {
			return true
		}
	}
	return false
}

// SegmentOverride returns the segment of the last segment override prefix in
// the list. Returns false if there is no segment override.
func (ps Prefixes) SegmentOverride() (operands.Segment, bool) {
	seg := operands.SegNone
	for _, p := range ps {
		if p.IsSegmentOverride() {
			seg = p.Segment
		}
	}
	return seg, seg != operands.SegNone
}

func (ps Prefixes) String() string {
	s := make([]string, len(ps))
	for i := range ps {
		s[i] = ps[i].Mnemonic
	}
	return strings.Join(s, " ")
}
