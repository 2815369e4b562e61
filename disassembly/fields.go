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

import "fmt"

type widths struct {
	address  int
	bytecode int
	prefixes int
	mnemonic int
}

type format struct {
	address  string
	bytecode string
	prefixes string
	mnemonic string
}

type fields struct {
	widths widths
	fmt    format
}

// Update width and formatting information for entry fields.
func (fld *fields) update(e *Entry) {
	if a := len(fmt.Sprintf("%#x", e.Address)); a > fld.widths.address {
		fld.widths.address = a
	}
	if b := len(e.Bytecode()); b > fld.widths.bytecode {
		fld.widths.bytecode = b
	}
	if p := len(e.Prefixes()); p > fld.widths.prefixes {
		fld.widths.prefixes = p
	}
	if m := len(e.Mnemonic()); m > fld.widths.mnemonic {
		fld.widths.mnemonic = m
	}

	fld.fmt.address = fmt.Sprintf("%%%ds", fld.widths.address)
	fld.fmt.bytecode = fmt.Sprintf("%%-%ds", fld.widths.bytecode)
	fld.fmt.prefixes = fmt.Sprintf("%%-%ds", fld.widths.prefixes)
	fld.fmt.mnemonic = fmt.Sprintf("%%-%ds", fld.widths.mnemonic)
}

// Field identifies which part of the disassembly entry is of interest.
type Field int

// List of valid fields.
const (
	Address Field = iota
	Bytecode
	Prefixes
	Mnemonic
	Operand
)

// GetField returns the formatted field from the specified Entry. Fields are
// padded so that the entries in a section line up.
func (sec *Section) GetField(field Field, e *Entry) string {
	switch field {
	case Address:
		return fmt.Sprintf(sec.fields.fmt.address, fmt.Sprintf("%#x", e.Address))
	case Bytecode:
		return fmt.Sprintf(sec.fields.fmt.bytecode, e.Bytecode())
	case Prefixes:
		return fmt.Sprintf(sec.fields.fmt.prefixes, e.Prefixes())
	case Mnemonic:
		return fmt.Sprintf(sec.fields.fmt.mnemonic, e.Mnemonic())
	case Operand:
		return e.Operand()
	}
	return ""
}
