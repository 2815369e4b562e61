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

import (
	"fmt"
	"strings"
)

// Operand is a single decoded operand. The set of implementations is closed:
// Register, Immediate, AbsoluteMemory, BaseMemory, IndexedMemory and
// DualBaseMemory.
type Operand interface {
	String() string
	isOperand()
}

// Memory is implemented by the operand types that reference memory. Every
// memory operand has a size and a segment.
type Memory interface {
	Operand

	// the segment register used by the memory reference. SegNone means the
	// default segment.
	Seg() Segment

	// returns a copy of the memory operand with the segment field replaced.
	// operand values are never changed in place.
	WithSegment(Segment) Memory
}

// Register operand.
type Register struct {
	Name string
}

func (Register) isOperand() {}

func (op Register) String() string {
	return op.Name
}

// Immediate operand. Also used for the relative displacement of branch
// instructions.
type Immediate struct {
	Value int64

	// width of the immediate in bytes
	Width int

	Signed bool
}

func (Immediate) isOperand() {}

// String returns the immediate value as unsigned hexadecimal, masked to the
// width of the immediate. A signed byte value of -1 is rendered as 0xff.
func (op Immediate) String() string {
	v := uint64(op.Value)
	if op.Width > 0 && op.Width < 8 {
		v &= (uint64(1) << (uint(op.Width) * 8)) - 1
	}
	return fmt.Sprintf("0x%x", v)
}

// AbsoluteMemory is a memory reference with no registers. For example, the
// ModRM mod=0 rm=5 form in 32 bit addressing.
type AbsoluteMemory struct {
	Offset  uint32
	Segment Segment
	Size    Size
}

func (AbsoluteMemory) isOperand() {}

func (op AbsoluteMemory) String() string {
	return fmt.Sprintf("%s[0x%x]", ptr(op.Size, op.Segment), op.Offset)
}

// Seg implements the Memory interface.
func (op AbsoluteMemory) Seg() Segment {
	return op.Segment
}

// WithSegment implements the Memory interface.
func (op AbsoluteMemory) WithSegment(seg Segment) Memory {
	op.Segment = seg
	return op
}

// BaseMemory is a memory reference using a single base register and an
// optional displacement.
type BaseMemory struct {
	Base         string
	Displacement int32
	Size         Size
	Segment      Segment
}

func (BaseMemory) isOperand() {}

func (op BaseMemory) String() string {
	return fmt.Sprintf("%s[%s%s]", ptr(op.Size, op.Segment), op.Base, displacement(op.Displacement))
}

// Seg implements the Memory interface.
func (op BaseMemory) Seg() Segment {
	return op.Segment
}

// WithSegment implements the Memory interface.
func (op BaseMemory) WithSegment(seg Segment) Memory {
	op.Segment = seg
	return op
}

// IndexedMemory is a memory reference decoded from a SIB byte. The Base field
// is empty for the no-base form (mod=0, SIB base=5).
type IndexedMemory struct {
	Scale        int
	Index        string
	Base         string
	Displacement int32
	Size         Size
	Segment      Segment
}

func (IndexedMemory) isOperand() {}

func (op IndexedMemory) String() string {
	s := strings.Builder{}
	s.WriteString(ptr(op.Size, op.Segment))
	s.WriteString("[")
	if op.Base != "" {
		s.WriteString(op.Base)
		s.WriteString(" + ")
	}
	s.WriteString(fmt.Sprintf("%s * %d", op.Index, op.Scale))
	s.WriteString(displacement(op.Displacement))
	s.WriteString("]")
	return s.String()
}

// Seg implements the Memory interface.
func (op IndexedMemory) Seg() Segment {
	return op.Segment
}

// WithSegment implements the Memory interface.
func (op IndexedMemory) WithSegment(seg Segment) Memory {
	op.Segment = seg
	return op
}

// DualBaseMemory is the 16 bit addressing form that adds two base registers.
// For example, [bx + si].
type DualBaseMemory struct {
	Base         string
	Base2        string
	Displacement int32
	Size         Size
	Segment      Segment
}

func (DualBaseMemory) isOperand() {}

func (op DualBaseMemory) String() string {
	return fmt.Sprintf("%s[%s + %s%s]", ptr(op.Size, op.Segment), op.Base, op.Base2, displacement(op.Displacement))
}

// Seg implements the Memory interface.
func (op DualBaseMemory) Seg() Segment {
	return op.Segment
}

// WithSegment implements the Memory interface.
func (op DualBaseMemory) WithSegment(seg Segment) Memory {
	op.Segment = seg
	return op
}

// ptr returns the size keyword and segment prefix of a memory reference.
func ptr(sz Size, seg Segment) string {
	if seg == SegNone {
		return fmt.Sprintf("%s PTR ", sz)
	}
	return fmt.Sprintf("%s PTR %s:", sz, seg)
}

// displacement term of a memory reference. zero displacements are not shown.
func displacement(d int32) string {
	switch {
	case d > 0:
		return fmt.Sprintf(" + 0x%x", d)
	case d < 0:
		return fmt.Sprintf(" - 0x%x", -int64(d))
	}
	return ""
}

// Strings returns the rendered form of every operand in the list.
func Strings(ops []Operand) []string {
	s := make([]string, len(ops))
	for i := range ops {
		s[i] = ops[i].String()
	}
	return s
}
