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

package catalog

import (
	"github.com/x86dsm/x86dsm/x86/operands"
	"github.com/x86dsm/x86dsm/x86/prefixes"
)

// Match is the result of a successful primary match.
type Match struct {
	// the matched descriptor. it points into the catalog and must not be
	// changed
	Defn *Descriptor

	// the register selected by the low three bits of the opcode. only valid
	// if Slot is zero or more
	Embedded operands.Register
	Slot     int
}

// HasEmbedded returns true if the match selected an opcode-embedded register.
func (m Match) HasEmbedded() bool {
	return m.Slot >= 0
}

// MatchPrimary finds the first descriptor for the opcode. The prefixes are
// those collected before the opcode and twoByte is true if the opcode
// followed a 0x0f escape.
//
// A descriptor with an opcode-embedded register template matches every
// opcode with the same upper five bits. The register is selected from the
// register file for the address width.
func (cat *Catalog) MatchPrimary(ps prefixes.Prefixes, twoByte bool, opcode uint8, w operands.Width) (Match, bool) {
	for i := range cat.descriptors {
		d := &cat.descriptors[i]

		if d.HasPrefix && !ps.Has(d.Prefix) {
			continue
		}
		if d.TwoByte != twoByte || !d.HasOpcode {
			continue
		}
		if d.Opcode>>3 != opcode>>3 {
			continue
		}

		if slot, ok := d.EmbeddedRegister(); ok {
			rf := d.Operands[slot].Registers(w, opcode&0x01 == 0x01)
			return Match{Defn: d, Embedded: rf.Reg(opcode), Slot: slot}, true
		}

		if d.Opcode == opcode {
			return Match{Defn: d, Slot: -1}, true
		}
	}

	return Match{Slot: -1}, false
}

// MatchGroup finds the first descriptor in the opcode-extension group for the
// opcode. The group is the reg field of the ModRM byte.
func (cat *Catalog) MatchGroup(ps prefixes.Prefixes, twoByte bool, opcode uint8, group uint8) (*Descriptor, bool) {
	for i := range cat.descriptors {
		d := &cat.descriptors[i]

		if d.HasPrefix && !ps.Has(d.Prefix) {
			continue
		}
		if d.TwoByte != twoByte || !d.HasOpcode || d.Opcode != opcode {
			continue
		}
		if d.ModRM.Kind == ExtensionGroup && d.ModRM.Group == group {
			return d, true
		}
	}

	return nil, false
}
