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

package disassembly_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/x86dsm/x86dsm/container"
	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/disassembly"
	"github.com/x86dsm/x86dsm/test"
	"github.com/x86dsm/x86dsm/x86/catalog"
	"github.com/x86dsm/x86dsm/x86/decoder"
	"github.com/x86dsm/x86dsm/x86/operands"
)

// PUSH ebp; MOV ebp, esp; (bad opcode); RET
var textData = []byte{0x55, 0x89, 0xe5, 0xf1, 0xc3}

func newDecoder(t *testing.T) *decoder.Decoder {
	t.Helper()
	cat, err := catalog.Builtin()
	test.DemandSuccess(t, err)
	return decoder.NewDecoder(cat, operands.Width32)
}

func TestDisassembleSection(t *testing.T) {
	sec := disassembly.DisassembleSection(newDecoder(t), ".text", 0x1000, textData)
	test.DemandSuccess(t, sec.Err == nil)
	test.DemandEquality(t, len(sec.Entries), 4)

	var listing []string
	for _, e := range sec.Entries {
		listing = append(listing, e.String())
	}
	expected := []string{"PUSH ebp", "MOV ebp, esp", "(bad opcode) 0xf1", "RET"}
	if diff := cmp.Diff(expected, listing); diff != "" {
		t.Errorf("unexpected listing (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(textData, sec.Data); diff != "" {
		t.Errorf("unexpected section data (-want +got):\n%s", diff)
	}

	test.ExpectEquality(t, sec.Entries[1].Offset, 1)
	test.ExpectEquality(t, sec.Entries[1].Address, uint64(0x1001))
	test.ExpectEquality(t, sec.Entries[1].Bytecode(), "89 e5")
	test.ExpectEquality(t, sec.Entries[2].Bytecode(), "f1")
	test.ExpectSuccess(t, sec.Entries[2].IsUnmatched())
	test.ExpectFailure(t, sec.Entries[3].IsUnmatched())

	ins, ok := sec.Entries[1].Instruction()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, ins.Mnemonic, "MOV")

	test.ExpectEquality(t, sec.Listing(), "PUSH ebp\nMOV ebp, esp\n(bad opcode) 0xf1\nRET")
}

func TestDisassembleSectionError(t *testing.T) {
	// MOV with no ModRM byte
	sec := disassembly.DisassembleSection(newDecoder(t), ".text", 0, []byte{0x55, 0x89})
	test.DemandFailure(t, sec.Err)
	test.ExpectSuccess(t, curated.Is(sec.Err, disassembly.SectionError))
	test.ExpectSuccess(t, curated.Has(sec.Err, decoder.StreamExhausted))

	// entries before the error are kept
	test.DemandEquality(t, len(sec.Entries), 1)
	test.ExpectEquality(t, sec.Entries[0].String(), "PUSH ebp")
}

func TestWrite(t *testing.T) {
	sec := disassembly.DisassembleSection(newDecoder(t), ".text", 0x1000, textData)
	w := &test.CompareWriter{}

	err := sec.Write(w, disassembly.WriteAttr{})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("--- section .text offset 0x0 address 0x1000 ---\n"+
		"PUSH         ebp\n"+
		"MOV          ebp, esp\n"+
		"(bad opcode) 0xf1\n"+
		"RET\n"), w.String())

	w.Clear()
	err = sec.Write(w, disassembly.WriteAttr{ByteCode: true, Offsets: true})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("--- section .text offset 0x0 address 0x1000 ---\n"+
		"0x1000 55    PUSH         ebp\n"+
		"0x1001 89 e5 MOV          ebp, esp\n"+
		"0x1003 f1    (bad opcode) 0xf1\n"+
		"0x1004 c3    RET\n"), w.String())
}

func TestWriteError(t *testing.T) {
	sec := disassembly.DisassembleSection(newDecoder(t), ".text", 0, []byte{0x55, 0x89})
	w := &test.CompareWriter{}
	err := sec.Write(w, disassembly.WriteAttr{})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("--- section .text offset 0x0 address 0x0 ---\n"+
		"PUSH ebp\n"+
		"*** "+sec.Err.Error()+"\n"), w.String())
}

func TestFromSections(t *testing.T) {
	sections := []container.Section{
		{Name: ".init", Address: 0x2000, Offset: 0x100, Data: []byte{0xc3}, Executable: true},
		{Name: ".text", Address: 0x1000, Offset: 0x200, Data: textData, Executable: true},
		{Name: ".fini", Address: 0x3000, Offset: 0x300, Data: []byte{0x55, 0x89}, Executable: true},
	}

	// a worker count of zero is the same as one
	for _, workers := range []int{0, 1, 4} {
		dsm := disassembly.FromSections(sections, newDecoder(t), workers)
		test.DemandEquality(t, len(dsm.Sections), 3, workers)

		// sections are in the same order as the container
		test.ExpectEquality(t, dsm.Sections[0].Name, ".init", workers)
		test.ExpectEquality(t, dsm.Sections[1].Name, ".text", workers)
		test.ExpectEquality(t, dsm.Sections[2].Name, ".fini", workers)
		test.ExpectEquality(t, dsm.Sections[1].Offset, uint64(0x200), workers)

		// failure of one section does not affect the others
		test.ExpectFailure(t, dsm.Sections[2].Err, workers)
		test.ExpectEquality(t, dsm.Sections[1].Listing(), "PUSH ebp\nMOV ebp, esp\n(bad opcode) 0xf1\nRET", workers)

		expected := disassembly.Summary{Sections: 3, Instructions: 5, Unmatched: 1, Failed: 1}
		test.ExpectEquality(t, dsm.Summary(), expected, workers)
	}
}

func TestWriteSection(t *testing.T) {
	sections := []container.Section{
		{Name: ".init", Address: 0x2000, Data: []byte{0xc3}, Executable: true},
	}
	dsm := disassembly.FromSections(sections, newDecoder(t), 1)

	w := &test.CompareWriter{}
	err := dsm.WriteSection(w, disassembly.WriteAttr{}, ".init")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Compare("--- section .init offset 0x0 address 0x2000 ---\nRET\n"), w.String())

	err = dsm.WriteSection(w, disassembly.WriteAttr{}, ".text")
	test.ExpectSuccess(t, curated.Is(err, disassembly.SectionError))
}

func TestGrep(t *testing.T) {
	sections := []container.Section{
		{Name: ".text", Address: 0x1000, Data: textData, Executable: true},
	}
	dsm := disassembly.FromSections(sections, newDecoder(t), 1)
	w := &test.CompareWriter{}

	n := dsm.Grep(w, disassembly.WriteAttr{}, disassembly.GrepMnemonic, "mov", false)
	test.ExpectEquality(t, n, 1)
	test.ExpectSuccess(t, w.Compare("--- section .text ---\nMOV          ebp, esp\n"), w.String())

	w.Clear()
	n = dsm.Grep(w, disassembly.WriteAttr{}, disassembly.GrepMnemonic, "mov", true)
	test.ExpectEquality(t, n, 0)
	test.ExpectSuccess(t, w.Compare(""), w.String())

	w.Clear()
	n = dsm.Grep(w, disassembly.WriteAttr{}, disassembly.GrepOperand, "ebp", true)
	test.ExpectEquality(t, n, 2)

	w.Clear()
	n = dsm.Grep(w, disassembly.WriteAttr{ByteCode: true}, disassembly.GrepAll, "c3", false)
	test.ExpectEquality(t, n, 1)
}

func TestSave(t *testing.T) {
	sections := []container.Section{
		{Name: ".init", Address: 0x2000, Offset: 0x100, Data: []byte{0xc3}, Executable: true},
		{Name: ".text", Address: 0x1000, Offset: 0x200, Data: textData, Executable: true},
	}
	dsm := disassembly.FromSections(sections, newDecoder(t), 2)

	dir := t.TempDir()
	err := dsm.Save(dir)
	test.DemandSuccess(t, err)

	b, err := os.ReadFile(filepath.Join(dir, disassembly.ListingDir, "512"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "PUSH ebp\nMOV ebp, esp\n(bad opcode) 0xf1\nRET")

	b, err = os.ReadFile(filepath.Join(dir, disassembly.ListingDir, "256"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "RET")

	b, err = os.ReadFile(filepath.Join(dir, disassembly.RawDir, "512"))
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(textData, b); diff != "" {
		t.Errorf("unexpected raw section (-want +got):\n%s", diff)
	}
}
