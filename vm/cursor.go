package turingvm

import "encoding/binary"

// cursor is a position within an immutable little-endian bytecode buffer.
// It has no bounds checks of its own in the hot path (the bytecode is
// trusted); an out-of-range fetch panics via ordinary Go
// slice indexing, and that panic is caught by the same recover point in Run
// that catches every other bytecode-bug fault.
type cursor struct {
	buf []byte
	pos uint32
}

func newCursor(buf []byte, pos uint32) *cursor {
	return &cursor{buf: buf, pos: pos}
}

func (c *cursor) fetchU8() uint8 {
	v := c.buf[c.pos]
	c.pos++
	return v
}

func (c *cursor) fetchU16() uint16 {
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v
}

func (c *cursor) fetchU32() uint32 {
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v
}

// jump sets the cursor to an absolute bytecode offset.
func (c *cursor) jump(addr uint32) {
	c.pos = addr
}

// skip advances the cursor by n bytes relative to its current position.
func (c *cursor) skip(n uint32) {
	c.pos += n
}
