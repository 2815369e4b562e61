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
	"fmt"
	"strings"

	"github.com/x86dsm/x86dsm/x86/catalog"
	"github.com/x86dsm/x86dsm/x86/operands"
	"github.com/x86dsm/x86dsm/x86/prefixes"
)

// Result is the outcome of a single call to Decode(). It is implemented by
// *Instruction and *Unmatched.
type Result interface {
	// the position in the buffer where decoding started
	Start() int

	// the rendered row: the mnemonic followed by the rendered operands
	Row() []string

	String() string
}

// Instruction is a successfully decoded instruction.
type Instruction struct {
	Offset   int
	Length   int
	Prefixes prefixes.Prefixes

	// the descriptor that matched. points into the catalog and must not be
	// changed
	Defn *catalog.Descriptor

	Mnemonic string

	// operands in order. absent templates and implied operands are not
	// included
	Operands []operands.Operand
}

// Start implements the Result interface.
func (ins *Instruction) Start() int {
	return ins.Offset
}

// Row implements the Result interface.
func (ins *Instruction) Row() []string {
	return append([]string{ins.Mnemonic}, operands.Strings(ins.Operands)...)
}

func (ins *Instruction) String() string {
	if len(ins.Operands) == 0 {
		return ins.Mnemonic
	}
	return fmt.Sprintf("%s %s", ins.Mnemonic, strings.Join(operands.Strings(ins.Operands), ", "))
}

// LockViolation returns true if the instruction has a LOCK prefix but the
// instruction does not allow it.
func (ins *Instruction) LockViolation() bool {
	return ins.Prefixes.Has(prefixes.Lock) && !ins.Defn.Lock
}

// BadOpcode is the first column of the row for an unmatched opcode.
const BadOpcode = "(bad opcode)"

// Unmatched is the result of decoding an opcode that is not in the catalog.
// It is a normal outcome of decoding and not an error.
type Unmatched struct {
	Offset  int
	Opcode  uint8
	TwoByte bool

	// the reg field of the ModRM byte if the opcode-extension group lookup
	// is where matching failed
	Group    uint8
	HasGroup bool

	// the position to continue decoding from. this is immediately after the
	// opcode. a ModRM byte is never consumed
	Resume int
}

// Start implements the Result interface.
func (un *Unmatched) Start() int {
	return un.Offset
}

// OpcodeString returns the opcode in hex notation, with the group value if
// there is one. eg. 0x0f 0xff or 0xfe/7.
func (un *Unmatched) OpcodeString() string {
	s := strings.Builder{}
	if un.TwoByte {
		s.WriteString(fmt.Sprintf("0x%02x ", prefixes.TwoByteEscape))
	}
	s.WriteString(fmt.Sprintf("0x%02x", un.Opcode))
	if un.HasGroup {
		s.WriteString(fmt.Sprintf("/%d", un.Group))
	}
	return s.String()
}

// Row implements the Result interface.
func (un *Unmatched) Row() []string {
	return []string{BadOpcode, un.OpcodeString()}
}

func (un *Unmatched) String() string {
	return fmt.Sprintf("%s %s", BadOpcode, un.OpcodeString())
}
