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

import "fmt"

// Width is the address width in bits that an instruction is decoded with.
type Width int

// List of valid Width values. Width64 is accepted from the container but
// decoding is done with the 32 bit register files and addressing tables.
const (
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

func (w Width) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}

// Registers returns the general purpose register file for the width. The
// wide argument is the width bit of the opcode: when it is false the 8 bit
// register file is always returned.
func (w Width) Registers(wide bool) RegisterFile {
	if !wide {
		return GPR8
	}
	if w == Width16 {
		return GPR16
	}
	return GPR32
}

// OperandBytes returns the number of bytes in a "v" sized (word or dword)
// operand.
func (w Width) OperandBytes() int {
	if w == Width16 {
		return 2
	}
	return 4
}

// Size returns the size of a memory operand. The wide argument is the width
// bit of the opcode.
func (w Width) Size(wide bool) Size {
	if !wide {
		return Byte
	}
	if w == Width16 {
		return Word
	}
	return Dword
}
