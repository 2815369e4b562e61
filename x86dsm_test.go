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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/x86dsm/x86dsm/test"
)

func TestHelp(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"-help"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "available sub-modes: DISASM, CATALOG, VERIFY"), w.String())
}

func TestVersion(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"-version"}), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "x86dsm "), w.String())
}

func TestCatalogMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"CATALOG"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), "MOV Ev, Gv"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"catalog", "-dump"}), 0)
	test.ExpectSuccess(t, strings.Contains(w.String(), `Mnemonic: (string) (len=3) "MOV"`), w.String())
}

func TestCatalogFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.csv")
	err := os.WriteFile(fn, []byte("RET, , , , , , , C3, ,\n"), 0o644)
	test.DemandSuccess(t, err)

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(w, []string{"CATALOG", "-catalog", fn}), 0)
	test.ExpectSuccess(t, w.Compare("   0  c3\tRET\n"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"CATALOG", "-catalog", filepath.Join(t.TempDir(), "missing.csv")}), exitMode)
}

func TestArgumentErrors(t *testing.T) {
	w := &test.CompareWriter{}

	// no file to disassemble
	test.ExpectEquality(t, launch(w, []string{"DISASM"}), exitMode)
	test.ExpectSuccess(t, strings.Contains(w.String(), "argument required"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"VERIFY", "a.elf", "b.elf"}), exitMode)
	test.ExpectSuccess(t, strings.Contains(w.String(), "too many arguments"), w.String())

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"CATALOG", "-nosuchflag"}), exitMode)

	w.Clear()
	test.ExpectEquality(t, launch(w, []string{"DISASM", filepath.Join(t.TempDir(), "missing.elf")}), exitMode)
}
