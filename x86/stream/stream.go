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

// Package stream reads little-endian values from a byte buffer, advancing a
// cursor with every read.
package stream

import (
	"encoding/binary"

	"github.com/x86dsm/x86dsm/curated"
)

// Exhausted is the pattern for the error returned when a read goes past the
// end of the buffer.
const Exhausted = "decoder: stream exhausted at offset %d"

// Cursor is a position in a byte buffer. The buffer is never changed.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor for the buffer starting at pos.
func NewCursor(buf []byte, pos int) *Cursor {
	return &Cursor{buf: buf, pos: pos}
}

// Pos returns the current position of the cursor.
func (c *Cursor) Pos() int {
	return c.pos
}

// Seek moves the cursor to a new position. Reads from a position outside the
// buffer will fail.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

// Peek returns the byte at the cursor without advancing the cursor. Returns
// false if the cursor is not inside the buffer.
func (c *Cursor) Peek() (uint8, bool) {
	if c.pos < 0 || c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

func (c *Cursor) next(n int) ([]byte, error) {
	if c.pos < 0 || c.pos+n > len(c.buf) {
		return nil, curated.Errorf(Exhausted, c.pos)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// U8 reads a single byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian 16 bit value.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian 32 bit value.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Value reads a little-endian value of n bytes, where n is 1, 2 or 4. If
// signed is true the value is sign extended.
func (c *Cursor) Value(n int, signed bool) (int64, error) {
	switch n {
	case 1:
		v, err := c.U8()
		if signed {
			return int64(int8(v)), err
		}
		return int64(v), err
	case 2:
		v, err := c.U16()
		if signed {
			return int64(int16(v)), err
		}
		return int64(v), err
	case 4:
		v, err := c.U32()
		if signed {
			return int64(int32(v)), err
		}
		return int64(v), err
	}
	return 0, curated.Errorf("stream: unsupported value size (%d)", n)
}
