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

package operands

import "strings"

// Size of a memory reference. The value is the number of bytes.
type Size int

// List of valid Size values.
const (
	Byte  Size = 1
	Word  Size = 2
	Dword Size = 4
	Qword Size = 8
)

// String returns the size keyword used when rendering a memory reference.
func (sz Size) String() string {
	switch sz {
	case Byte:
		return "BYTE"
	case Word:
		return "WORD"
	case Dword:
		return "DWORD"
	case Qword:
		return "QWORD"
	}
	return "UNKNOWN"
}

// Segment is the segment register used by a memory reference.
type Segment int

// List of valid Segment values. SegNone means the default data segment for
// the addressing form and is not rendered.
const (
	SegNone Segment = iota
	ES
	CS
	SS
	DS
	FS
	GS
)

func (seg Segment) String() string {
	switch seg {
	case ES:
		return "es"
	case CS:
		return "cs"
	case SS:
		return "ss"
	case DS:
		return "ds"
	case FS:
		return "fs"
	case GS:
		return "gs"
	}
	return ""
}

// ParseSegment returns the Segment for a segment register name. The
// comparison is case insensitive. Returns SegNone and false if the name is not
// a segment register.
func ParseSegment(name string) (Segment, bool) {
	switch strings.ToLower(name) {
	case "es":
		return ES, true
	case "cs":
		return CS, true
	case "ss":
		return SS, true
	case "ds":
		return DS, true
	case "fs":
		return FS, true
	case "gs":
		return GS, true
	}
	return SegNone, false
}
