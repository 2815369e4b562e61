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

// Package container reads the code sections of an ELF executable. It supplies
// the raw bytes of each section and the address width of the file. It does
// not decode instructions.
package container

import (
	"debug/elf"
	"io"
	"os"

	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/logger"
	"github.com/x86dsm/x86dsm/x86/operands"
)

// FileError is the pattern for all errors returned by the package.
const FileError = "container: %v"

// Section is a single PROGBITS section from the file.
type Section struct {
	Name    string
	Address uint64
	Offset  uint64
	Data    []byte

	// the section contains executable instructions
	Executable bool
}

// File is the information about an executable file needed for disassembly.
type File struct {
	Class   elf.Class
	Machine elf.Machine

	// all PROGBITS sections in the order they appear in the file
	Sections []Section
}

// Open an ELF file.
func Open(filename string) (*File, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader reads an ELF file from an io.ReaderAt. The data of every PROGBITS
// section is read before the function returns.
func FromReader(r io.ReaderAt) (*File, error) {
	ef, err := elf.NewFile(r)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer ef.Close()

	f := &File{
		Class:   ef.Class,
		Machine: ef.Machine,
	}

	switch ef.Machine {
	case elf.EM_386, elf.EM_X86_64:
	default:
		logger.Logf(logger.Allow, "container", "machine type is %s. decoding as x86 anyway", ef.Machine)
	}

	if ef.Class == elf.ELFCLASS64 {
		logger.Log(logger.Allow, "container", "64-bit file will be decoded with the 32-bit tables")
	}

	// we traverse the Sections array rather than the Progs array because
	// some files have no program headers
	for _, sec := range ef.Sections {
		if sec.Type != elf.SHT_PROGBITS {
			continue
		}

		data, err := sec.Data()
		if err != nil {
			return nil, curated.Errorf(FileError, curated.Errorf("section %s: %v", sec.Name, err))
		}

		f.Sections = append(f.Sections, Section{
			Name:       sec.Name,
			Address:    sec.Addr,
			Offset:     sec.Offset,
			Data:       data,
			Executable: sec.Flags&elf.SHF_EXECINSTR == elf.SHF_EXECINSTR,
		})
	}

	return f, nil
}

// Width returns the default address width for the file.
func (f *File) Width() operands.Width {
	if f.Class == elf.ELFCLASS64 {
		return operands.Width64
	}
	return operands.Width32
}

// Executable returns the sections that contain executable instructions.
func (f *File) Executable() []Section {
	s := make([]Section, 0, len(f.Sections))
	for _, sec := range f.Sections {
		if sec.Executable {
			s = append(s, sec)
		} else {
			logger.Logf(logger.Allow, "container", "skipping non-executable section %s", sec.Name)
		}
	}
	return s
}

// Section returns the named section. Returns false if the section does not
// exist or is not a PROGBITS section.
func (f *File) Section(name string) (Section, bool) {
	for _, sec := range f.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}
