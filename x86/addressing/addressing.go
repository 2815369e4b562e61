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

package addressing

import (
	"github.com/x86dsm/x86dsm/x86/operands"
	"github.com/x86dsm/x86dsm/x86/stream"
)

// ModRM is the split form of a ModRM byte.
type ModRM struct {
	Mod uint8
	Reg uint8
	RM  uint8
}

// Split the ModRM byte into its three fields.
func Split(b uint8) ModRM {
	return ModRM{
		Mod: b >> 6,
		Reg: (b >> 3) & 0x07,
		RM:  b & 0x07,
	}
}

// Resolution is the result of resolving a ModRM byte.
type Resolution struct {
	// the register or memory operand selected by the mod and rm fields
	RM operands.Operand

	// the register selected by the reg field. nil if the reg field was not
	// requested as an operand
	Reg operands.Operand

	// number of bytes used by the addressing form, including the ModRM byte
	// itself, any SIB byte and any displacement
	Consumed int
}

// the 16 bit addressing forms, indexed by the rm field. rm 6 with mod 0 is
// replaced by a 16 bit absolute address.
var table16 = [8]struct {
	base  string
	base2 string
}{
	{"bx", "si"},
	{"bx", "di"},
	{"bp", "si"},
	{"bp", "di"},
	{"si", ""},
	{"di", ""},
	{"bp", ""},
	{"bx", ""},
}

// index field value in a SIB byte that means there is no index register
const sibNoIndex = 4

// Resolve the ModRM byte into operands. The offset argument is the position
// in buf immediately after the ModRM byte, which is where any SIB byte or
// displacement will be read from.
//
// The wide argument selects the 8 bit register file when false and sets the
// size of the memory operand. The regOperand argument should be true if the
// reg field of the ModRM byte is a register operand.
func Resolve(buf []byte, offset int, modrm ModRM, w operands.Width, wide bool, regOperand bool) (Resolution, error) {
	c := stream.NewCursor(buf, offset)

	res := Resolution{}

	if regOperand {
		res.Reg = w.Registers(wide).Reg(modrm.Reg)
	}

	var err error

	if modrm.Mod == 0x03 {
		res.RM = w.Registers(wide).Reg(modrm.RM)
	} else if w == operands.Width16 {
		res.RM, err = resolve16(c, modrm, w.Size(wide))
	} else {
		res.RM, err = resolve32(c, modrm, w.Size(wide))
	}
	if err != nil {
		return Resolution{}, err
	}

	res.Consumed = c.Pos() - offset + 1

	return res, nil
}

func resolve16(c *stream.Cursor, modrm ModRM, sz operands.Size) (operands.Operand, error) {
	var disp int32

	switch modrm.Mod {
	case 0x00:
		if modrm.RM == 0x06 {
			v, err := c.U16()
			if err != nil {
				return nil, err
			}
			return operands.AbsoluteMemory{Offset: uint32(v), Size: sz}, nil
		}
	case 0x01:
		v, err := c.U8()
		if err != nil {
			return nil, err
		}
		disp = int32(v)
	case 0x02:
		v, err := c.U16()
		if err != nil {
			return nil, err
		}
		disp = int32(v)
	}

	e := table16[modrm.RM]
	if e.base2 != "" {
		return operands.DualBaseMemory{Base: e.base, Base2: e.base2, Displacement: disp, Size: sz}, nil
	}
	return operands.BaseMemory{Base: e.base, Displacement: disp, Size: sz}, nil
}

// displacement32 reads the displacement selected by the mod field.
func displacement32(c *stream.Cursor, mod uint8) (int32, error) {
	switch mod {
	case 0x01:
		v, err := c.U8()
		return int32(int8(v)), err
	case 0x02:
		v, err := c.U32()
		return int32(v), err
	}
	return 0, nil
}

func resolve32(c *stream.Cursor, modrm ModRM, sz operands.Size) (operands.Operand, error) {
	gpr := operands.GPR32

	if modrm.RM == 0x04 {
		sib, err := c.U8()
		if err != nil {
			return nil, err
		}

		scale := 1 << (sib >> 6)
		index := (sib >> 3) & 0x07
		base := sib & 0x07

		// no base register. a 32 bit displacement follows the SIB byte
		if modrm.Mod == 0x00 && base == 0x05 {
			v, err := c.U32()
			if err != nil {
				return nil, err
			}
			if index == sibNoIndex {
				return operands.AbsoluteMemory{Offset: v, Size: sz}, nil
			}
			return operands.IndexedMemory{Scale: scale, Index: gpr[index], Displacement: int32(v), Size: sz}, nil
		}

		disp, err := displacement32(c, modrm.Mod)
		if err != nil {
			return nil, err
		}
		if index == sibNoIndex {
			return operands.BaseMemory{Base: gpr[base], Displacement: disp, Size: sz}, nil
		}
		return operands.IndexedMemory{Scale: scale, Index: gpr[index], Base: gpr[base], Displacement: disp, Size: sz}, nil
	}

	if modrm.Mod == 0x00 && modrm.RM == 0x05 {
		v, err := c.U32()
		if err != nil {
			return nil, err
		}
		return operands.AbsoluteMemory{Offset: v, Size: sz}, nil
	}

	disp, err := displacement32(c, modrm.Mod)
	if err != nil {
		return nil, err
	}
	return operands.BaseMemory{Base: gpr[modrm.RM], Displacement: disp, Size: sz}, nil
}
