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
	"bytes"
	"fmt"
	"io"
	"strings"
)

// GrepScope limits the scope of the search
type GrepScope int

// List of available scopes
const (
	GrepMnemonic GrepScope = iota
	GrepOperand
	GrepAll
)

// Grep searches the disassembly for the specified search string. Matching
// entries are written with the attributes in WriteAttr. Returns the number of
// matching entries.
func (dsm *Disassembly) Grep(output io.Writer, attr WriteAttr, scope GrepScope, search string, caseSensitive bool) int {
	var s, m string
	var matches int

	if !caseSensitive {
		search = strings.ToUpper(search)
	}

	for _, sec := range dsm.Sections {
		sectionHeader := false

		for _, e := range sec.Entries {
			// line representation of entry. we'll print this in case of a
			// match
			line := &bytes.Buffer{}
			sec.WriteEntry(line, attr, e)

			// limit scope of grep to the correct entry field
			switch scope {
			case GrepMnemonic:
				s = e.Mnemonic()
			case GrepOperand:
				s = e.Operand()
			case GrepAll:
				s = line.String()
			}

			if !caseSensitive {
				m = strings.ToUpper(s)
			} else {
				m = s
			}

			if strings.Contains(m, search) {
				// if we've not yet printed the header for the current section
				// then print it now
				if !sectionHeader {
					if matches > 0 {
						output.Write([]byte("\n"))
					}
					output.Write([]byte(fmt.Sprintf("--- section %s ---\n", sec.Name)))
					sectionHeader = true
				}

				// we've matched so print entire line
				output.Write(line.Bytes())
				matches++
			}
		}
	}

	return matches
}
