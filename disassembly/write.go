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

package disassembly

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/x86dsm/x86dsm/curated"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	ByteCode bool
	Offsets  bool
	Prefixes bool
}

// Write the entire disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) error {
	for i, sec := range dsm.Sections {
		if i > 0 {
			output.Write([]byte("\n"))
		}
		err := sec.Write(output, attr)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSection writes the disassembly of the named section to io.Writer.
func (dsm *Disassembly) WriteSection(output io.Writer, attr WriteAttr, name string) error {
	sec, ok := dsm.Section(name)
	if !ok {
		return curated.Errorf(SectionError, name, "no such section")
	}
	return sec.Write(output, attr)
}

// Write the section to io.Writer. The section is introduced with a header line.
// If the section failed to disassemble completely the error is written after
// the last entry.
func (sec *Section) Write(output io.Writer, attr WriteAttr) error {
	_, err := output.Write([]byte(fmt.Sprintf("--- section %s offset %#x address %#x ---\n", sec.Name, sec.Offset, sec.Address)))
	if err != nil {
		return curated.Errorf(SectionError, sec.Name, err)
	}

	for _, e := range sec.Entries {
		sec.WriteEntry(output, attr, e)
	}

	if sec.Err != nil {
		output.Write([]byte(fmt.Sprintf("*** %v\n", sec.Err)))
	}

	return nil
}

// WriteEntry writes a single entry to io.Writer.
func (sec *Section) WriteEntry(output io.Writer, attr WriteAttr, e *Entry) {
	s := strings.Builder{}

	if attr.Offsets {
		s.WriteString(sec.GetField(Address, e))
		s.WriteString(" ")
	}

	if attr.ByteCode {
		s.WriteString(sec.GetField(Bytecode, e))
		s.WriteString(" ")
	}

	if attr.Prefixes {
		s.WriteString(sec.GetField(Prefixes, e))
		s.WriteString(" ")
	}

	s.WriteString(sec.GetField(Mnemonic, e))
	s.WriteString(" ")
	s.WriteString(sec.GetField(Operand, e))

	output.Write([]byte(strings.TrimRight(s.String(), " ")))
	output.Write([]byte("\n"))
}

// Listing returns the section as it is written by Save(). One entry per line
// in the form returned by Entry.String(). There is no newline after the last
// line.
func (sec *Section) Listing() string {
	l := make([]string, len(sec.Entries))
	for i, e := range sec.Entries {
		l[i] = e.String()
	}
	return strings.Join(l, "\n")
}

// Names of the directories created by Save().
const (
	ListingDir = "sections_asm"
	RawDir     = "sections_raw"
)

// Save writes the listing of every section to the sections_asm directory
// under dir. Each listing is named by the offset of the section in the file.
// The bytes of each section are written to the sections_raw directory in the
// same way.
func (dsm *Disassembly) Save(dir string) error {
	asmDir := filepath.Join(dir, ListingDir)
	rawDir := filepath.Join(dir, RawDir)

	for _, d := range []string{asmDir, rawDir} {
		err := os.MkdirAll(d, 0o755)
		if err != nil {
			return curated.Errorf(SectionError, "*", err)
		}
	}

	for _, sec := range dsm.Sections {
		fn := fmt.Sprintf("%d", sec.Offset)

		err := os.WriteFile(filepath.Join(asmDir, fn), []byte(sec.Listing()), 0o644)
		if err != nil {
			return curated.Errorf(SectionError, sec.Name, err)
		}

		err = os.WriteFile(filepath.Join(rawDir, fn), sec.Data, 0o644)
		if err != nil {
			return curated.Errorf(SectionError, sec.Name, err)
		}
	}

	return nil
}
