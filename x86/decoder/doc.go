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

// Package decoder decodes x86 machine code one instruction at a time.
//
// Decoding an instruction happens in this order: legacy prefixes are
// collected; the opcode is read, following a 0x0f escape to the two-byte map
// if necessary; the opcode is matched against the catalog; if the matched
// descriptor requires it, the ModRM byte is resolved and any opcode-extension
// group is matched; the remaining operand templates are read from the byte
// stream; and finally any segment override prefix is applied to the memory
// operands.
//
// An opcode that cannot be matched results in an *Unmatched value and not an
// error. The caller should note the unmatched opcode and continue decoding
// from the returned offset:
//
//	offset := 0
//	for offset < len(data) {
//		res, next, err := dec.Decode(data, offset)
//		if err != nil {
//			return err
//		}
//		fmt.Println(res)
//		offset = next
//	}
//
// The only error returned by Decode() is when an instruction runs off the end
// of the buffer. The pattern of that error is StreamExhausted.
//
// The operand-size prefix (0x66) selects 16 bit operands and 16 bit
// addressing. The address-size prefix (0x67) is collected but has no effect.
package decoder
