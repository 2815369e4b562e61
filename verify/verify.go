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

package verify

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"github.com/x86dsm/x86dsm/disassembly"
	"github.com/x86dsm/x86dsm/logger"
	"github.com/x86dsm/x86dsm/x86/operands"
)

// Kind of disagreement.
type Kind int

// List of valid Kind values.
const (
	Length Kind = iota
	Mnemonic
	Unrecognised
)

func (k Kind) String() string {
	switch k {
	case Length:
		return "length"
	case Mnemonic:
		return "mnemonic"
	case Unrecognised:
		return "unrecognised"
	}
	return "unknown"
}

// Mismatch is a disagreement between the disassembly and x86asm for a single
// instruction.
type Mismatch struct {
	Section string
	Offset  int
	Address uint64
	Kind    Kind

	// the decoded instruction
	Mnemonic string
	Length   int

	// the instruction as decoded by x86asm. for the Unrecognised kind the
	// mnemonic is empty and the length is zero
	RefMnemonic string
	RefLength   int

	// the x86asm instruction in Intel syntax or the x86asm error
	Reference string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s %#x: %s: %s (%d bytes) :: %s (%d bytes)",
		m.Section, m.Address, m.Kind, m.Mnemonic, m.Length, m.Reference, m.RefLength)
}

// alternative spellings used by x86asm
var aliases = map[string]string{
	"INT3": "INT",
	"WAIT": "FWAIT",
	"XLAT": "XLATB",
	"SAL":  "SHL",
}

// far forms of CALL and JMP are named differently by x86asm
var refAliases = map[string]string{
	"LCALL": "CALL",
	"LJMP":  "JMP",
}

func sameMnemonic(mnemonic string, ref string) bool {
	if a, ok := aliases[mnemonic]; ok {
		mnemonic = a
	}
	if a, ok := refAliases[ref]; ok {
		ref = a
	}
	return mnemonic == ref
}

// Section compares every instruction in the section with the result of
// x86asm. The width is the width the section was decoded with. Mnemonic
// disagreements are only reported if mnemonics is true.
func Section(sec *disassembly.Section, w operands.Width, mnemonics bool) []Mismatch {
	var mismatches []Mismatch

	for _, e := range sec.Entries {
		ins, ok := e.Instruction()
		if !ok {
			continue
		}

		m := Mismatch{
			Section:  sec.Name,
			Offset:   e.Offset,
			Address:  e.Address,
			Mnemonic: ins.Mnemonic,
			Length:   ins.Length,
		}

		ref, err := x86asm.Decode(sec.Data[e.Offset:], int(w))
		if err != nil {
			m.Kind = Unrecognised
			m.Reference = err.Error()
			mismatches = append(mismatches, m)
			continue
		}

		m.RefMnemonic = ref.Op.String()
		m.RefLength = ref.Len
		m.Reference = x86asm.IntelSyntax(ref, e.Address, nil)

		if ref.Len != ins.Length {
			m.Kind = Length
			mismatches = append(mismatches, m)
		} else if mnemonics && !sameMnemonic(ins.Mnemonic, m.RefMnemonic) {
			m.Kind = Mnemonic
			mismatches = append(mismatches, m)
		}
	}

	if len(mismatches) > 0 {
		logger.Logf(logger.Allow, "verify", "%s: %d disagreements with x86asm", sec.Name, len(mismatches))
	}

	return mismatches
}

// Disassembly compares every section in the disassembly. See Section() for
// details.
func Disassembly(dsm *disassembly.Disassembly, w operands.Width, mnemonics bool) []Mismatch {
	var mismatches []Mismatch
	for _, sec := range dsm.Sections {
		mismatches = append(mismatches, Section(sec, w, mnemonics)...)
	}
	return mismatches
}
