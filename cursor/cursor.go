// Package cursor provides a bounded, allocation-free read position over an
// immutable byte slice, shared by every decoder in this module (varint,
// compress, souris, store).
package cursor

import "github.com/BurntNail/sourisdb/internal/errs"

// Cursor is a forward-and-backward read position over an immutable byte
// slice. It never copies the underlying bytes; Read/Peek return subslices
// that alias the original buffer.
//
// Cursor is not safe for concurrent use — callers hold exclusive use of one
// Cursor during a single decode.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf in a Cursor positioned at offset 0.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the number of bytes remaining to be read.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// IsFinished reports whether the cursor has consumed the whole buffer.
func (c *Cursor) IsFinished() bool {
	return c.pos >= len(c.buf)
}

// Read advances the cursor by n bytes and returns them, or
// errs.ErrNotEnoughBytes if fewer than n bytes remain.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, errs.ErrNotEnoughBytes
	}
	out := c.buf[c.pos : c.pos+n]
	c.pos += n

	return out, nil
}

// ReadByte reads a single byte and advances the cursor by one.
func (c *Cursor) ReadByte() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Peek returns the next n bytes without advancing the cursor.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, errs.ErrNotEnoughBytes
	}

	return c.buf[c.pos : c.pos+n], nil
}

// Seek moves the cursor by delta bytes, which may be negative. It saturates
// at 0 on underflow but fails if delta would move the cursor past the end of
// the buffer.
func (c *Cursor) Seek(delta int) error {
	next := c.pos + delta
	if next < 0 {
		next = 0
	}
	if next > len(c.buf) {
		return errs.ErrNotEnoughBytes
	}
	c.pos = next

	return nil
}

// ReadRemaining returns every byte from the current position to the end of
// the buffer and advances the cursor to the end.
func (c *Cursor) ReadRemaining() []byte {
	out := c.buf[c.pos:]
	c.pos = len(c.buf)

	return out
}
