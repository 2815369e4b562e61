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

// Package verify compares a disassembly with the decoder in the
// golang.org/x/arch/x86/x86asm package.
//
// Every decoded instruction in a section is decoded again by x86asm, starting
// at the same offset. A disagreement about the length of the instruction is
// always reported because it means that the two decoders will lose step with
// one another from that point. Disagreements about the mnemonic are reported
// on request.
//
// Some mnemonics are spelled differently by x86asm. For example, INT3 is INT
// with an argument of 3 and XLAT is XLATB. These spellings are treated as
// being the same.
//
// Bad opcodes in the disassembly are not compared.
package verify
