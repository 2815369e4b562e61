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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Packages that want callers to be able to recognise an
// error export the pattern as a constant. For example, the decoder package
// exports the StreamExhausted pattern:
//
//	err := curated.Errorf(decoder.StreamExhausted, offset)
//
//	if curated.Is(err, decoder.StreamExhausted) {
//		fmt.Println("ran out of bytes")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf(decoder.StreamExhausted, 10)
//	f := curated.Errorf(disassembly.SectionError, ".text", e)
//
//	curated.Has(f, decoder.StreamExhausted) // true
//	curated.Is(f, decoder.StreamExhausted)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference between curated and
// uncurated errors as being 'expected' and 'unexpected'.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example, a catalog error wrapping another
// catalog error will print as:
//
//	catalog: row 12: unknown operand template (Qx)
//
// and not:
//
//	catalog: catalog: row 12: unknown operand template (Qx)
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': '.
//
// Curated errors also implement Unwrap() so errors.Is() and errors.As() from
// the standard library will find an error value passed as one of the
// placeholder values.
package curated
