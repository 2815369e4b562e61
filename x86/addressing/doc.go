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

// Package addressing resolves the ModRM byte, and any SIB byte and
// displacement that follow it, into register and memory operands.
//
// Both the 16 bit and 32 bit addressing forms are supported. The 64 bit
// address width uses the 32 bit forms.
//
// In the 32 bit forms, an index field of 4 in the SIB byte always means that
// there is no index register. It never selects the esp register.
package addressing
