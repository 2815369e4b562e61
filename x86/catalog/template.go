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
	"strings"

	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/x86/operands"
)

// TemplateKind describes how an operand template is resolved.
type TemplateKind int

// List of valid TemplateKind values.
const (
	// no operand in this slot
	Absent TemplateKind = iota

	// the slot is filled by an operand decoded from the ModRM byte. eg. Ev, Gb
	ModRMSlot

	// immediate value following the instruction. eg. Ib, Iv
	Immediate

	// relative branch displacement. eg. Jbs, Jvs
	Relative

	// a register named explicitly. eg. AL, EAX, DX
	Register

	// the ES:[edi] destination of string instructions. eg. Yb
	StringDestination

	// the DS:[esi] source of string instructions. eg. Xb
	StringSource

	// an address width memory offset following the instruction. eg. Ov
	MemoryOffset

	// a literal number. eg. the 1 in the shift-by-one instructions
	Constant

	// an operand that is implied by the instruction and not shown. eg. Fv
	Implicit

	// the register is encoded in the low three bits of the opcode. eg. Zv
	EmbeddedRegister
)

func (k TemplateKind) String() string {
	switch k {
	case Absent:
		return "Absent"
	case ModRMSlot:
		return "ModRMSlot"
	case Immediate:
		return "Immediate"
	case Relative:
		return "Relative"
	case Register:
		return "Register"
	case StringDestination:
		return "StringDestination"
	case StringSource:
		return "StringSource"
	case MemoryOffset:
		return "MemoryOffset"
	case Constant:
		return "Constant"
	case Implicit:
		return "Implicit"
	case EmbeddedRegister:
		return "EmbeddedRegister"
	}
	return "unknown template kind"
}

// Template is a parsed operand template from the catalog.
type Template struct {
	// the template as it appears in the catalog
	Code string

	Kind TemplateKind

	// size suffix of the template. one of 'b', 'w', 'd', 'v' or zero if the
	// template has no size suffix
	Suffix byte

	// sign extended immediate or relative displacement
	Signed bool

	// the lower case register name for Register templates
	Register string

	// the value of Constant templates
	Value int64
}

func (tmp Template) String() string {
	return tmp.Code
}

// Bytes returns the number of bytes used by a sized template with the
// effective width. Returns zero for templates with no size suffix.
func (tmp Template) Bytes(w operands.Width) int {
	switch tmp.Suffix {
	case 'b':
		return 1
	case 'w':
		return 2
	case 'd':
		return 4
	case 'v':
		return w.OperandBytes()
	}
	return 0
}

// Registers returns the register file used by an EmbeddedRegister template.
// The wide argument is the width bit of the opcode and is only used if the
// template has no size suffix.
func (tmp Template) Registers(w operands.Width, wide bool) operands.RegisterFile {
	switch tmp.Suffix {
	case 'b':
		return operands.GPR8
	case 'w':
		return operands.GPR16
	case 'd':
		return operands.GPR32
	case 'v':
		return w.Registers(true)
	}
	return w.Registers(wide)
}

// letters that begin a template filled from the ModRM byte
const modRMLetters = "EGMRCDS"

// parseTemplate parses the operand template code from the catalog.
func parseTemplate(code string) (Template, error) {
	code = strings.TrimSpace(code)
	tmp := Template{Code: code}

	if code == "" {
		tmp.Kind = Absent
		return tmp, nil
	}

	// register names are checked first because some register names begin
	// with the same letter as a template kind. eg. CS, DX, FS
	if operands.IsRegister(code) {
		tmp.Kind = Register
		tmp.Register = strings.ToLower(code)
		return tmp, nil
	}

	if code == "1" {
		tmp.Kind = Constant
		tmp.Value = 1
		return tmp, nil
	}

	var err error

	switch code[0] {
	case 'Z':
		tmp.Kind = EmbeddedRegister
		if len(code) > 1 {
			tmp.Suffix, err = parseSuffix(code[1:], false)
		}
	case 'I':
		tmp.Kind = Immediate
		tmp.Suffix, tmp.Signed, err = parseSignedSuffix(code[1:])
	case 'J':
		tmp.Kind = Relative
		tmp.Suffix, tmp.Signed, err = parseSignedSuffix(code[1:])
	case 'Y':
		tmp.Kind = StringDestination
		tmp.Suffix, err = parseSuffix(code[1:], false)
	case 'X':
		tmp.Kind = StringSource
		tmp.Suffix, err = parseSuffix(code[1:], false)
	case 'O':
		tmp.Kind = MemoryOffset
		tmp.Suffix, err = parseSuffix(code[1:], false)
	case 'F':
		tmp.Kind = Implicit
	default:
		if strings.IndexByte(modRMLetters, code[0]) == -1 {
			return tmp, curated.Errorf("unknown operand template (%s)", code)
		}
		tmp.Kind = ModRMSlot
		if len(code) > 1 {
			// ModRM templates can have suffixes not used by the decoder. eg.
			// Mp, Ew. only the standard suffixes are noted
			tmp.Suffix, _ = parseSuffix(code[1:2], true)
		}
	}

	if err != nil {
		return tmp, curated.Errorf("unknown operand template (%s): %v", code, err)
	}

	return tmp, nil
}

func parseSuffix(s string, lenient bool) (byte, error) {
	if len(s) == 1 {
		switch s[0] {
		case 'b', 'w', 'd', 'v':
			return s[0], nil
		}
	}
	if lenient {
		return 0, nil
	}
	return 0, fmt.Errorf("size suffix must be one of b, w, d, v")
}

func parseSignedSuffix(s string) (byte, bool, error) {
	signed := strings.HasSuffix(s, "s")
	if signed {
		s = strings.TrimSuffix(s, "s")
	}
	sfx, err := parseSuffix(s, false)
	return sfx, signed, err
}
