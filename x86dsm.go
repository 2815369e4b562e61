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
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"github.com/x86dsm/x86dsm/container"
	"github.com/x86dsm/x86dsm/curated"
	"github.com/x86dsm/x86dsm/disassembly"
	"github.com/x86dsm/x86dsm/logger"
	"github.com/x86dsm/x86dsm/modalflag"
	"github.com/x86dsm/x86dsm/statsview"
	"github.com/x86dsm/x86dsm/verify"
	"github.com/x86dsm/x86dsm/version"
	"github.com/x86dsm/x86dsm/x86/catalog"
)

// exit values
const (
	exitArgs = 10
	exitMode = 20
)

const defaultWorkers = 4

func main() {
	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. the exit value is sent over the channel
	// when it has finished
	exit := make(chan int)
	go func() {
		exit <- launch(os.Stdout, os.Args[1:])
	}()

	exitVal := 0
	select {
	case <-intChan:
		fmt.Println("\r")
	case exitVal = <-exit:
	}

	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. returns the value
// to use with os.Exit()
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("DISASM", "CATALOG", "VERIFY")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitArgs
	}

	if *showVersion {
		fmt.Fprintln(output, version.String())
		return 0
	}

	switch md.Mode() {
	case "DISASM":
		err = disasm(md)

	case "CATALOG":
		err = listCatalog(md)

	case "VERIFY":
		err = verifyMode(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitMode
	}

	return 0
}

// loadCatalog returns the built-in catalog if filename is empty
func loadCatalog(filename string) (*catalog.Catalog, error) {
	if filename == "" {
		return catalog.Builtin()
	}
	return catalog.LoadFile(filename)
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	catFile := md.AddString("catalog", "", "instruction catalog (JSON or CSV). the built-in catalog is used by default")
	section := md.AddString("section", "", "show disassembly for a specific section")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	offsets := md.AddBool("offsets", false, "include addresses in disassembly")
	prefixes := md.AddBool("prefixes", false, "include prefixes in disassembly")
	grep := md.AddString("grep", "", "only show instructions containing the search string")
	out := md.AddString("out", "", "save listing of each section to directory")
	workers := md.AddInt("workers", defaultWorkers, "number of sections to disassemble at once")
	log := md.AddBool("log", false, "echo log to stdout")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress))
	md.AdditionalHelp("Only executable sections of ELF files are disassembled. Listings saved with\n" +
		"-out are named by the file offset of each section.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	err = md.CheckArgs(1, 1)
	if err != nil {
		return err
	}

	if *log {
		logger.SetEcho(md.Output, false)
		defer logger.SetEcho(nil, false)
	}

	if *stats {
		stop := statsview.Launch(md.Output, "")
		defer stop()
	}

	cat, err := loadCatalog(*catFile)
	if err != nil {
		return err
	}

	f, err := container.Open(md.GetArg(0))
	if err != nil {
		return err
	}

	dsm := disassembly.FromContainer(f, cat, *workers)

	attr := disassembly.WriteAttr{
		ByteCode: *bytecode,
		Offsets:  *offsets,
		Prefixes: *prefixes,
	}

	if *grep != "" {
		dsm.Grep(md.Output, attr, disassembly.GrepAll, *grep, false)
	} else if *section != "" {
		err = dsm.WriteSection(md.Output, attr, *section)
	} else {
		err = dsm.Write(md.Output, attr)
	}
	if err != nil {
		return err
	}

	if *out != "" {
		err = dsm.Save(*out)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(md.Output, "* %s\n", dsm.Summary())

	return nil
}

func listCatalog(md *modalflag.Modes) error {
	md.NewMode()

	catFile := md.AddString("catalog", "", "instruction catalog (JSON or CSV). the built-in catalog is used by default")
	dump := md.AddBool("dump", false, "dump every descriptor in full")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	err = md.CheckArgs(0, 0)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(*catFile)
	if err != nil {
		return err
	}

	if *dump {
		cfg := spew.ConfigState{
			Indent:                  "  ",
			DisableMethods:          true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
		}
		cfg.Fdump(md.Output, cat.Descriptors())
		return nil
	}

	cat.Write(md.Output)

	return nil
}

func verifyMode(md *modalflag.Modes) error {
	md.NewMode()

	catFile := md.AddString("catalog", "", "instruction catalog (JSON or CSV). the built-in catalog is used by default")
	section := md.AddString("section", "", "only verify a specific section")
	mnemonics := md.AddBool("mnemonics", false, "report mnemonic disagreements as well as length disagreements")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	err = md.CheckArgs(1, 1)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(*catFile)
	if err != nil {
		return err
	}

	f, err := container.Open(md.GetArg(0))
	if err != nil {
		return err
	}

	dsm := disassembly.FromContainer(f, cat, defaultWorkers)

	var mismatches []verify.Mismatch
	if *section != "" {
		sec, ok := dsm.Section(*section)
		if !ok {
			return curated.Errorf(disassembly.SectionError, *section, "no such section")
		}
		mismatches = verify.Section(sec, f.Width(), *mnemonics)
	} else {
		mismatches = verify.Disassembly(dsm, f.Width(), *mnemonics)
	}

	for _, m := range mismatches {
		fmt.Fprintln(md.Output, m)
	}
	fmt.Fprintf(md.Output, "* %d disagreements\n", len(mismatches))

	return nil
}
