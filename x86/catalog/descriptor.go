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
	"fmt"
	"strconv"
	"strings"

	"github.com/x86dsm/x86dsm/curated"
)

// ModRMKind is the ModRM requirement of a descriptor.
type ModRMKind int

// List of valid ModRMKind values.
const (
	// instruction has no ModRM byte
	NoModRM ModRMKind = iota

	// the reg field of the ModRM byte is a register operand
	RegIsOperand

	// the reg field selects the instruction from an opcode-extension group
	ExtensionGroup
)

// ModRM is the ModRM requirement of a descriptor. The Group field is only
// meaningful when Kind is ExtensionGroup.
type ModRM struct {
	Kind  ModRMKind
	Group uint8
}

// String returns the requirement in the form used by the catalog.
func (m ModRM) String() string {
	switch m.Kind {
	case RegIsOperand:
		return "r"
	case ExtensionGroup:
		return fmt.Sprintf("/%d", m.Group)
	}
	return ""
}

// parseModRM parses the rop field of a catalog row.
func parseModRM(s string) (ModRM, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return ModRM{Kind: NoModRM}, nil
	case "r":
		return ModRM{Kind: RegIsOperand}, nil
	}

	g, err := strconv.ParseUint(s, 10, 8)
	if err != nil || g > 7 {
		return ModRM{}, curated.Errorf("invalid ModRM requirement (%s)", s)
	}
	return ModRM{Kind: ExtensionGroup, Group: uint8(g)}, nil
}

// NumOperands is the maximum number of operand templates in a descriptor.
const NumOperands = 4

// Descriptor is a single row of the instruction catalog. Descriptors are
// never changed once the catalog has been loaded.
type Descriptor struct {
	Mnemonic string
	Operands [NumOperands]Template

	// the descriptor only matches if the prefix is present
	Prefix    uint8
	HasPrefix bool

	// rows with no opcode are kept but never match
	Opcode    uint8
	HasOpcode bool

	// secondary opcode byte. informational only
	Opcode2    uint8
	HasOpcode2 bool

	// descriptor belongs to the two-byte (0x0f) opcode map
	TwoByte bool

	ModRM ModRM
	Lock  bool
	Ext   bool

	// position of the descriptor in the catalog. first row is zero
	Row int
}

// EmbeddedRegister returns the operand slot with the opcode-embedded register
// template. Returns false if there is no such template.
func (d *Descriptor) EmbeddedRegister() (int, bool) {
	for i := range d.Operands {
		if d.Operands[i].Kind == EmbeddedRegister {
			return i, true
		}
	}
	return -1, false
}

// OpcodeString returns the opcode in hex notation, including the 0x0f escape
// for descriptors in the two-byte map.
func (d *Descriptor) OpcodeString() string {
	if !d.HasOpcode {
		return "--"
	}
	if d.TwoByte {
		return fmt.Sprintf("0f %02x", d.Opcode)
	}
	return fmt.Sprintf("%02x", d.Opcode)
}

// String returns a single line summary of the descriptor.
func (d *Descriptor) String() string {
	s := strings.Builder{}
	if d.HasPrefix {
		s.WriteString(fmt.Sprintf("%02x ", d.Prefix))
	}
	s.WriteString(d.OpcodeString())
	if m := d.ModRM.String(); m != "" {
		s.WriteString(" ")
		s.WriteString(m)
	}
	s.WriteString("\t")
	s.WriteString(d.Mnemonic)

	ops := make([]string, 0, NumOperands)
	for _, o := range d.Operands {
		if o.Kind != Absent {
			ops = append(ops, o.Code)
		}
	}
	if len(ops) > 0 {
		s.WriteString(" ")
		s.WriteString(strings.Join(ops, ", "))
	}

	return s.String()
}

// row is the unparsed form of a descriptor. the JSON and CSV loaders both
// produce rows.
type row struct {
	mnemonic string
	ops      [NumOperands]string
	prefix   string
	dopc     string
	opc      string
	opc2     string
	rop      string
	lock     bool
	ext      bool
}

// parseHex parses an optional hex byte field. an empty field returns false.
func parseHex(s string) (uint8, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, false, curated.Errorf("invalid hex byte (%s)", s)
	}
	return uint8(v), true, nil
}

// descriptor converts the row into a Descriptor. the n argument is the
// position of the row in the catalog.
func (r row) descriptor(n int) (Descriptor, error) {
	d := Descriptor{
		Mnemonic: strings.TrimSpace(r.mnemonic),
		Lock:     r.lock,
		Ext:      r.ext,
		Row:      n,
	}

	if d.Mnemonic == "" {
		return d, curated.Errorf("missing mnemonic")
	}

	var err error

	for i := range r.ops {
		d.Operands[i], err = parseTemplate(r.ops[i])
		if err != nil {
			return d, err
		}
	}

	d.Prefix, d.HasPrefix, err = parseHex(r.prefix)
	if err != nil {
		return d, curated.Errorf("prefix: %v", err)
	}

	d.Opcode, d.HasOpcode, err = parseHex(r.opc)
	if err != nil {
		return d, curated.Errorf("opc: %v", err)
	}

	d.Opcode2, d.HasOpcode2, err = parseHex(r.opc2)
	if err != nil {
		return d, curated.Errorf("opc2: %v", err)
	}

	m, ok, err := parseHex(r.dopc)
	if err != nil {
		return d, curated.Errorf("map: %v", err)
	}
	if ok {
		if m != 0x0f {
			return d, curated.Errorf("map: only the 0f opcode map is supported (%02x)", m)
		}
		d.TwoByte = true
	} else if d.HasOpcode && d.Opcode == 0x0f && d.HasOpcode2 {
		// the escape byte written as the primary opcode. the real opcode is
		// the secondary opcode
		d.TwoByte = true
		d.Opcode = d.Opcode2
		d.Opcode2 = 0
		d.HasOpcode2 = false
	}

	d.ModRM, err = parseModRM(r.rop)
	if err != nil {
		return d, err
	}

	return d, nil
}
