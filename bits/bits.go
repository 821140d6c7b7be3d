// SPDX-License-Identifier: EPL-2.0

package bits

// Terminator layout: a zero wideband flag followed by the reserved
// submode 15. A decoder that reads this pair stops consuming the buffer.
const (
	TerminatorFlag    = 0
	TerminatorSubmode = 15
)

// Bits is an MSB-first bit buffer used to build and consume encoded
// frames. Writes append at the end, reads consume from an independent
// cursor, so a single buffer can hold several frames plus in-band data.
//
// The zero value is ready to use.
type Bits struct {
	buf    []byte
	nbits  int // total bits written
	cursor int // read position in bits
}

// NewFromBytes returns a Bits reading from data. The buffer is not copied.
func NewFromBytes(data []byte) *Bits {
	return &Bits{buf: data, nbits: len(data) * 8}
}

// Reset discards all written bits and rewinds the read cursor.
func (b *Bits) Reset() {
	b.buf = b.buf[:0]
	b.nbits = 0
	b.cursor = 0
}

// Rewind moves the read cursor back to the first bit without
// discarding written data.
func (b *Bits) Rewind() {
	b.cursor = 0
}

// ReadFrom replaces the buffer contents with data and rewinds the cursor.
func (b *Bits) ReadFrom(data []byte) {
	b.buf = append(b.buf[:0], data...)
	b.nbits = len(data) * 8
	b.cursor = 0
}

// Len returns the total number of bits written.
func (b *Bits) Len() int { return b.nbits }

// Remaining returns the number of unread bits.
func (b *Bits) Remaining() int { return b.nbits - b.cursor }

// Bytes returns the written bits as a byte slice. The final partial
// byte, if any, is zero padded. The returned slice aliases the
// internal buffer and is only valid until the next write.
func (b *Bits) Bytes() []byte {
	return b.buf[:(b.nbits+7)/8]
}

// Pack appends the low n bits of v, most significant bit first.
// n must be in [0, 32].
func (b *Bits) Pack(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		b.packBit(byte(v>>uint(i)) & 1)
	}
}

// PackSigned appends v as an n-bit two's complement value.
func (b *Bits) PackSigned(v int32, n int) {
	b.Pack(uint32(v)&((1<<uint(n))-1), n)
}

func (b *Bits) packBit(bit byte) {
	if b.nbits%8 == 0 {
		b.buf = append(b.buf, 0)
	}
	if bit != 0 {
		b.buf[b.nbits/8] |= 1 << uint(7-b.nbits%8)
	}
	b.nbits++
}

// Unpack consumes and returns the next n unread bits as an unsigned
// value. It returns ErrEndOfStream when fewer than n bits remain.
func (b *Bits) Unpack(n int) (uint32, error) {
	v, err := b.Peek(n)
	if err != nil {
		return 0, err
	}
	b.cursor += n
	return v, nil
}

// UnpackSigned consumes the next n bits as a two's complement value.
func (b *Bits) UnpackSigned(n int) (int32, error) {
	v, err := b.Unpack(n)
	if err != nil {
		return 0, err
	}
	if n < 32 && v&(1<<uint(n-1)) != 0 {
		return int32(v) - (1 << uint(n)), nil
	}
	return int32(v), nil
}

// Peek returns the next n unread bits without advancing the cursor.
func (b *Bits) Peek(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, ErrBitCount
	}
	if b.cursor+n > b.nbits {
		return 0, ErrEndOfStream
	}
	var v uint32
	pos := b.cursor
	for i := 0; i < n; i++ {
		bit := (b.buf[pos/8] >> uint(7-pos%8)) & 1
		v = v<<1 | uint32(bit)
		pos++
	}
	return v, nil
}

// Advance skips n unread bits.
func (b *Bits) Advance(n int) error {
	if n < 0 || b.cursor+n > b.nbits {
		return ErrEndOfStream
	}
	b.cursor += n
	return nil
}

// PadToByte appends zero bits until the write position is byte aligned.
func (b *Bits) PadToByte() {
	for b.nbits%8 != 0 {
		b.packBit(0)
	}
}

// InsertTerminator appends the stream terminator and pads to a byte
// boundary. Decoders treat everything after it as padding.
func (b *Bits) InsertTerminator() {
	b.Pack(TerminatorFlag, 1)
	b.Pack(TerminatorSubmode, 4)
	b.PadToByte()
}
