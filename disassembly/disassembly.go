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

	"golang.org/x/sync/errgroup"

	"github.com/x86dsm/x86dsm/container"
	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/logger"
	"github.com/x86dsm/x86dsm/x86/catalog"
	"github.com/x86dsm/x86dsm/x86/decoder"
)

// SectionError is the pattern for errors that stop the disassembly of a
// section.
const SectionError = "disassembly: section %s: %v"

// Section is the disassembly of a single executable section.
type Section struct {
	Name    string
	Address uint64

	// offset of the section in the file
	Offset uint64

	// the bytes of the section
	Data []byte

	Entries []*Entry

	// the error that stopped disassembly of the section early. entries
	// decoded before the error are kept
	Err error

	// formatting information for all entries in the section
	fields fields
}

// Disassembly is the disassembly of every executable section in a file.
type Disassembly struct {
	Sections []*Section
}

// DisassembleSection decodes every instruction in the data. Decoding starts at
// the beginning of the data and continues until all the data has been used or
// until an instruction runs off the end of the data.
//
// Unmatched opcodes are added to the section as entries and logged. Decoding
// continues after the opcode.
func DisassembleSection(dec *decoder.Decoder, name string, address uint64, data []byte) *Section {
	sec := &Section{
		Name:    name,
		Address: address,
		Data:    data,
		Entries: make([]*Entry, 0, len(data)/3),
	}

	offset := 0
	for offset < len(data) {
		res, next, err := dec.Decode(data, offset)
		if err != nil {
			sec.Err = curated.Errorf(SectionError, name, err)
			logger.Log(logger.Allow, "disassembly", sec.Err)
			break
		}

		e := &Entry{
			Offset:  offset,
			Address: address + uint64(offset),
			Bytes:   data[offset:next],
			Result:  res,
		}

		switch r := res.(type) {
		case *decoder.Unmatched:
			logger.Logf(logger.Allow, "disassembly", "%s: %s at %#x", name, r, e.Address)
		case *decoder.Instruction:
			if r.LockViolation() {
				logger.Logf(logger.Allow, "disassembly", "%s: LOCK prefix not allowed for %s at %#x", name, r.Mnemonic, e.Address)
			}
		}

		sec.Entries = append(sec.Entries, e)
		sec.fields.update(e)

		offset = next
	}

	return sec
}

// FromSection disassembles a section from a container file.
func FromSection(dec *decoder.Decoder, cs container.Section) *Section {
	sec := DisassembleSection(dec, cs.Name, cs.Address, cs.Data)
	sec.Offset = cs.Offset
	return sec
}

// FromContainer disassembles every executable section of the file. Sections
// are disassembled concurrently with no more than workers sections being
// decoded at once. A value less than one means one.
//
// A section that fails does not affect the other sections. The error for the
// section is noted in the Err field of the Section.
func FromContainer(f *container.File, cat *catalog.Catalog, workers int) *Disassembly {
	return FromSections(f.Executable(), decoder.NewDecoder(cat, f.Width()), workers)
}

// FromSections disassembles the sections with the decoder. See FromContainer()
// for details.
func FromSections(sections []container.Section, dec *decoder.Decoder, workers int) *Disassembly {
	dsm := &Disassembly{
		Sections: make([]*Section, len(sections)),
	}

	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i := range sections {
		i := i
		g.Go(func() error {
			dsm.Sections[i] = FromSection(dec, sections[i])
			return nil
		})
	}

	// section failures are stored in the Section and never returned to the
	// group so Wait() will never return an error
	_ = g.Wait()

	return dsm
}

// Section returns the named section. Returns false if there is no section with
// that name.
func (dsm *Disassembly) Section(name string) (*Section, bool) {
	for _, sec := range dsm.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return nil, false
}

// Summary counts the entries and failures in a disassembly.
type Summary struct {
	Sections     int
	Instructions int
	Unmatched    int
	Failed       int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d sections: %d instructions, %d bad opcodes, %d failed sections",
		s.Sections, s.Instructions, s.Unmatched, s.Failed)
}

// Summary of the disassembly.
func (dsm *Disassembly) Summary() Summary {
	s := Summary{Sections: len(dsm.Sections)}
	for _, sec := range dsm.Sections {
		for _, e := range sec.Entries {
			if e.IsUnmatched() {
				s.Unmatched++
			} else {
				s.Instructions++
			}
		}
		if sec.Err != nil {
			s.Failed++
		}
	}
	return s
}
