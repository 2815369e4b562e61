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

package modalflag_test

import (
	"testing"

	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/modalflag"
	"github.com/x86dsm/x86dsm/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-bytecode", "a.elf", "b.elf"})
	bytecode := md.AddBool("bytecode", false, "include bytecode")

	test.ExpectFailure(t, *bytecode)

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")

	test.ExpectSuccess(t, *bytecode)
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(1), "b.elf")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"verify", "-mnemonics", "a.elf"})
	md.AddSubModes("DISASM", "CATALOG", "VERIFY")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "VERIFY")

	md.NewMode()
	mnemonics := md.AddBool("mnemonics", false, "report mnemonics")
	workers := md.AddInt("workers", 4, "number of workers")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *mnemonics)
	test.ExpectEquality(t, *workers, 4)
	test.ExpectEquality(t, md.GetArg(0), "a.elf")
	test.ExpectEquality(t, md.Path(), "VERIFY")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"a.elf"})
	md.AddSubModes("DISASM", "CATALOG", "VERIFY")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "DISASM")

	md.NewMode()
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.GetArg(0), "a.elf")
}

func TestParseError(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectSuccess(t, curated.Is(err, modalflag.ParseFlagError))
}

func TestCheckArgs(t *testing.T) {
	md := modalflag.Modes{Output: &test.CompareWriter{}}
	md.NewArgs([]string{"catalog", "a", "b"})
	md.AddSubModes("DISASM", "CATALOG")
	_, _ = md.Parse()
	md.NewMode()
	_, _ = md.Parse()

	test.ExpectSuccess(t, md.CheckArgs(2, 2))
	test.ExpectSuccess(t, md.CheckArgs(0, -1))

	err := md.CheckArgs(3, 3)
	test.ExpectSuccess(t, curated.Is(err, modalflag.ArgCountError))
	test.ExpectEquality(t, err.Error(), "modalflag: CATALOG mode: too few arguments")

	err = md.CheckArgs(0, 1)
	test.ExpectEquality(t, err.Error(), "modalflag: CATALOG mode: too many arguments")
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"), tw.String())
}

func TestHelpFlags(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("offsets", true, "include addresses")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -offsets\n" +
		"    	include addresses (default true)\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestHelpModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("DISASM", "CATALOG", "VERIFY")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  available sub-modes: DISASM, CATALOG, VERIFY\n" +
		"    default: DISASM\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("offsets", true, "include addresses")
	md.AddSubModes("DISASM", "CATALOG", "VERIFY")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -offsets\n" +
		"    	include addresses (default true)\n" +
		"\n" +
		"  available sub-modes: DISASM, CATALOG, VERIFY\n" +
		"    default: DISASM\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}

func TestAdditionalHelp(t *testing.T) {
	tw := &test.CompareWriter{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("DISASM")
	md.AdditionalHelp("catalogs can be JSON or CSV")

	_, _ = md.Parse()

	expectedHelp := "Usage:\n" +
		"  available sub-modes: DISASM\n" +
		"    default: DISASM\n" +
		"\n" +
		"catalogs can be JSON or CSV\n"

	test.ExpectSuccess(t, tw.Compare(expectedHelp), tw.String())
}
