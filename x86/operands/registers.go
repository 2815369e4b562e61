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

import "strings"

// RegisterFile is an indexed list of register names. The index is the three
// bit register number found in ModRM, SIB and opcode encodings.
type RegisterFile [8]string

// the register files. names are lower case because that is how they are
// rendered.
var (
	GPR32 = RegisterFile{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}
	GPR16 = RegisterFile{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}
	GPR8  = RegisterFile{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
)

// special purpose registers. these are only ever named explicitly by an
// operand template in the catalog.
var (
	DebugRegisters   = []string{"dr0", "dr1", "dr2", "dr3", "dr4", "dr5", "dr6", "dr7", "dr8"}
	ControlRegisters = []string{"cr0", "cr1", "cr2", "cr3", "cr4", "cr5", "cr6", "cr7", "cr8"}
	SegmentRegisters = []string{"cs", "ds", "ss", "es", "fs", "gs"}
)

// Reg returns the Register operand for the numbered register. Only the lower
// three bits of n are used.
func (rf RegisterFile) Reg(n uint8) Register {
	return Register{Name: rf[n&0x07]}
}

// every register name known to the decoder, keyed by lower case name
var registerNames map[string]bool

func init() {
	registerNames = make(map[string]bool)
	for _, rf := range []RegisterFile{GPR32, GPR16, GPR8} {
		for _, r := range rf {
			registerNames[r] = true
		}
	}
	for _, l := range [][]string{DebugRegisters, ControlRegisters, SegmentRegisters} {
		for _, r := range l {
			registerNames[r] = true
		}
	}
}

// IsRegister returns true if name is a register name. The comparison is case
// insensitive.
func IsRegister(name string) bool {
	return registerNames[strings.ToLower(name)]
}
