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

// Package catalog contains the instruction descriptors used by the decoder.
//
// The catalog is an ordered list of descriptors. Each descriptor names an
// instruction, the opcode (and optional required prefix) that selects it, the
// ModRM requirement and up to four operand templates. The built-in catalog is
// compiled into the program from instructions.csv. Alternative catalogs can be
// loaded from JSON or CSV files with LoadFile().
//
// Matching is always done in catalog order and the first matching descriptor
// is used. Where more than one descriptor could match an opcode, the position
// in the catalog decides.
//
// Operand templates use the usual shorthand. The first letter gives the kind
// of operand and the remaining letters give the size:
//
//	E G M R C D S	operand from the ModRM byte
//	I		immediate value
//	J		relative branch displacement
//	Z		register in the low three bits of the opcode
//	Y		string destination, es:[edi]
//	X		string source, ds:[esi]
//	O		memory offset
//	F		implied flags register, not shown
//
// A size of 'v' means word or dword depending on the address width. An 's'
// after the size means the value is sign extended. Register names and the
// constant 1 are also valid templates.
package catalog
