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

package decoder

import (
	"github.com/x86dsm/x86dsm/x86/addressing"
	"github.com/x86dsm/x86dsm/x86/catalog"
	"github.com/x86dsm/x86dsm/x86/operands"
	"github.com/x86dsm/x86dsm/x86/prefixes"
	"github.com/x86dsm/x86dsm/x86/stream"
)

// StreamExhausted is the pattern of the error returned by Decode() when an
// instruction continues past the end of the buffer.
const StreamExhausted = stream.Exhausted

// Decoder decodes instructions using a catalog. The Decoder has no state
// other than the catalog and the default address width, and can be used from
// more than one goroutine at once.
type Decoder struct {
	cat   *catalog.Catalog
	width operands.Width
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
// The width is the default address width, usually taken from the class of the
// executable file.
func NewDecoder(cat *catalog.Catalog, width operands.Width) *Decoder {
	return &Decoder{
		cat:   cat,
		width: width,
	}
}

// Width returns the default address width of the decoder.
func (dec *Decoder) Width() operands.Width {
	return dec.width
}

// Catalog returns the catalog used by the decoder.
func (dec *Decoder) Catalog() *catalog.Catalog {
	return dec.cat
}

// Decode a single instruction starting at offset in buf. Returns the result
// and the offset at which to decode the next instruction.
//
// An opcode that is not in the catalog is not an error. The result will be an
// *Unmatched value and the returned offset will be immediately after the
// opcode. The only error returned is for an instruction that runs past the end
// of buf. The error pattern in that case is StreamExhausted.
func (dec *Decoder) Decode(buf []byte, offset int) (Result, int, error) {
	c := stream.NewCursor(buf, offset)

	// legacy prefixes
	var ps prefixes.Prefixes
	for {
		b, ok := c.Peek()
		if !ok {
			break
		}
		p, ok := prefixes.Lookup(b)
		if !ok {
			break
		}
		ps = append(ps, p)
		c.Seek(c.Pos() + 1)
	}

	// the operand-size prefix changes the width of both the operands and the
	// addressing forms. the address-size prefix has no effect
	w := dec.width
	if ps.Has(prefixes.OperandSize) {
		w = operands.Width16
	}

	opcode, err := c.U8()
	if err != nil {
		return nil, offset, err
	}

	var twoByte bool
	if opcode == prefixes.TwoByteEscape {
		twoByte = true
		opcode, err = c.U8()
		if err != nil {
			return nil, offset, err
		}
	}

	wide := opcode&0x01 == 0x01
	direction := opcode&0x02 == 0x02

	m, ok := dec.cat.MatchPrimary(ps, twoByte, opcode, w)
	if !ok {
		un := &Unmatched{
			Offset:  offset,
			Opcode:  opcode,
			TwoByte: twoByte,
			Resume:  c.Pos(),
		}
		return un, un.Resume, nil
	}

	defn := m.Defn

	// operands decoded from the ModRM byte, in the order they fill the ModRM
	// templates of the descriptor
	var fromModRM []operands.Operand

	if defn.ModRM.Kind != catalog.NoModRM {
		preModRM := c.Pos()

		b, err := c.U8()
		if err != nil {
			return nil, offset, err
		}
		modrm := addressing.Split(b)

		regOperand := defn.ModRM.Kind == catalog.RegIsOperand
		res, err := addressing.Resolve(buf, c.Pos(), modrm, w, modRMWide(defn, wide), regOperand)
		if err != nil {
			return nil, offset, err
		}
		c.Seek(preModRM + res.Consumed)

		switch defn.ModRM.Kind {
		case catalog.ExtensionGroup:
			defn, ok = dec.cat.MatchGroup(ps, twoByte, opcode, modrm.Reg)
			if !ok {
				un := &Unmatched{
					Offset:   offset,
					Opcode:   opcode,
					TwoByte:  twoByte,
					Group:    modrm.Reg,
					HasGroup: true,
					Resume:   preModRM,
				}
				return un, un.Resume, nil
			}
			fromModRM = []operands.Operand{res.RM}
		case catalog.RegIsOperand:
			if direction {
				fromModRM = []operands.Operand{res.Reg, res.RM}
			} else {
				fromModRM = []operands.Operand{res.RM, res.Reg}
			}
		}
	}

	ins := &Instruction{
		Offset:   offset,
		Prefixes: ps,
		Defn:     defn,
		Mnemonic: defn.Mnemonic,
		Operands: make([]operands.Operand, 0, catalog.NumOperands),
	}

	for slot, tmp := range defn.Operands {
		var op operands.Operand

		switch tmp.Kind {
		case catalog.Absent, catalog.Implicit:
			continue

		case catalog.ModRMSlot:
			if len(fromModRM) == 0 {
				continue
			}
			op = fromModRM[0]
			fromModRM = fromModRM[1:]

		case catalog.EmbeddedRegister:
			if !m.HasEmbedded() || m.Slot != slot {
				continue
			}
			op = m.Embedded

		case catalog.Immediate, catalog.Relative:
			n := tmp.Bytes(w)
			v, err := c.Value(n, tmp.Signed)
			if err != nil {
				return nil, offset, err
			}
			op = operands.Immediate{Value: v, Width: n, Signed: tmp.Signed}

		case catalog.Register:
			op = operands.Register{Name: tmp.Register}

		case catalog.Constant:
			op = operands.Immediate{Value: tmp.Value, Width: 1}

		case catalog.StringDestination:
			op = operands.BaseMemory{
				Base:    indexRegister(w, "edi", "di"),
				Size:    templateSize(tmp, w),
				Segment: operands.ES,
			}

		case catalog.StringSource:
			op = operands.BaseMemory{
				Base:    indexRegister(w, "esi", "si"),
				Size:    templateSize(tmp, w),
				Segment: operands.DS,
			}

		case catalog.MemoryOffset:
			v, err := c.Value(w.OperandBytes(), false)
			if err != nil {
				return nil, offset, err
			}
			op = operands.AbsoluteMemory{Offset: uint32(v), Size: templateSize(tmp, w)}
		}

		ins.Operands = append(ins.Operands, op)
	}

	// segment override applies to every memory operand. the last override
	// prefix is the one used
	if seg, ok := ps.SegmentOverride(); ok {
		for i, op := range ins.Operands {
			if mem, ok := op.(operands.Memory); ok {
				ins.Operands[i] = mem.WithSegment(seg)
			}
		}
	}

	ins.Length = c.Pos() - offset

	return ins, c.Pos(), nil
}

// modRMWide decides the width of the operand decoded from the ModRM byte. The
// size suffix of the first ModRM template in the descriptor is used if there
// is one, otherwise the width bit of the opcode.
func modRMWide(defn *catalog.Descriptor, wide bool) bool {
	for _, tmp := range defn.Operands {
		if tmp.Kind != catalog.ModRMSlot {
			continue
		}
		switch tmp.Suffix {
		case 'b':
			return false
		case 'w', 'd', 'v':
			return true
		}
		return wide
	}
	return wide
}

func indexRegister(w operands.Width, reg32 string, reg16 string) string {
	if w == operands.Width16 {
		return reg16
	}
	return reg32
}

// templateSize returns the size of a memory operand described by the size
// suffix of a template.
func templateSize(tmp catalog.Template, w operands.Width) operands.Size {
	switch tmp.Suffix {
	case 'b':
		return operands.Byte
	case 'w':
		return operands.Word
	case 'd':
		return operands.Dword
	}
	return w.Size(true)
}
