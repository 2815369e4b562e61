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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/x86dsm/x86dsm/x86/decoder"
)

// Entry is a single line of the disassembly. Either a decoded instruction or
// an unmatched opcode.
type Entry struct {
	// offset of the entry from the start of the section
	Offset int

	// address of the entry. the section address plus the offset
	Address uint64

	// the bytes used by the entry. for an unmatched opcode this is the
	// prefixes and the opcode only
	Bytes []byte

	// the *decoder.Instruction or *decoder.Unmatched
	Result decoder.Result
}

// Instruction returns the decoded instruction. Returns false if the entry is
// an unmatched opcode.
func (e *Entry) Instruction() (*decoder.Instruction, bool) {
	ins, ok := e.Result.(*decoder.Instruction)
	return ins, ok
}

// IsUnmatched returns true if the entry is an unmatched opcode.
func (e *Entry) IsUnmatched() bool {
	_, ok := e.Result.(*decoder.Unmatched)
	return ok
}

// Row returns the mnemonic and the operands as separate strings. For
// unmatched opcodes the mnemonic is "(bad opcode)" and the only operand is
// the opcode in hex.
func (e *Entry) Row() []string {
	return e.Result.Row()
}

// Mnemonic returns the first column of the row.
func (e *Entry) Mnemonic() string {
	return e.Row()[0]
}

// Operand returns the remaining columns of the row, separated by commas.
func (e *Entry) Operand() string {
	return strings.Join(e.Row()[1:], ", ")
}

// Bytecode returns the bytes of the entry in hex.
func (e *Entry) Bytecode() string {
	return fmt.Sprintf("% 02x", e.Bytes)
}

// Prefixes returns the prefixes of a decoded instruction. Returns the empty
// string for an unmatched opcode.
func (e *Entry) Prefixes() string {
	if ins, ok := e.Instruction(); ok {
		return ins.Prefixes.String()
	}
	return ""
}

// String returns the entry in the form used by saved listings. The mnemonic
// followed by the operands, separated by commas. eg. "MOV ebx, eax".
func (e *Entry) String() string {
	op := e.Operand()
	if op == "" {
		return e.Mnemonic()
	}
	return fmt.Sprintf("%s %s", e.Mnemonic(), op)
}
