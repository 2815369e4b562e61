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

// Package disassembly coordinates the disassembly of the executable sections
// of a file.
//
// For quick disassemblies the FromContainer() function can be used. Each
// executable section is decoded with the decoder package from the first byte
// to the last. Sections are independent of one another and are disassembled
// concurrently.
//
// An opcode that can not be found in the instruction catalog does not stop
// the disassembly of a section. It is recorded as an entry of its own and
// decoding resumes at the byte after the opcode. An instruction that runs off
// the end of the section does stop the disassembly and the error is recorded
// in the Section.
//
// The disassembly can be written as formatted text with the Write() family of
// functions, searched with Grep() or saved to disk with Save(). Saved
// listings contain one instruction per line. For example:
//
//	PUSH ebp
//	MOV ebp, esp
//	SUB esp, 0x10
package disassembly
