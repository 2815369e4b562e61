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

// Package operands contains the value types for decoded x86 operands and the
// rules for rendering them as text.
//
// Operands are values. The only change ever made to an operand after it has
// been decoded is the replacement of the segment in a memory reference, and
// that is done by creating a copy with the Memory.WithSegment() function.
//
// Rendering is in the Intel style used by the disassembly listings:
//
//	ebx
//	0x1f
//	DWORD PTR [0x8049000]
//	BYTE PTR es:[edi]
//	DWORD PTR [ebp - 0x8]
//	WORD PTR [bx + si + 0x4]
//	DWORD PTR fs:[eax + ecx * 4 + 0x10]
package operands
