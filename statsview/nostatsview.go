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

//go:build !statsview
// +build !statsview

package statsview

import "io"

// DefaultAddress is the address used by Launch() when no address is given.
const DefaultAddress = "localhost:12600"

// Launch does nothing without the statsview build tag.
func Launch(output io.Writer, addr string) func() {
	output.Write([]byte("stats server not available in this build\n"))
	return func() {}
}

// Available returns true if the statsview build tag was used.
func Available() bool {
	return false
}
