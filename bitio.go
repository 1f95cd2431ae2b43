package flocic

// BitWriter packs bits MSB first into a byte slice.
type BitWriter struct {
	buf   []byte
	cache byte
	bits  uint8
}

func (w *BitWriter) WriteBit(bit uint8) {
	if 0 < bit {
		w.cache |= (1 << (7 - w.bits))
	}
	w.bits += 1
	if w.bits == 8 {
		w.buf = append(w.buf, w.cache)
		w.bits = 0
		w.cache = 0
	}
}

// WriteBits writes the n low-order bits of val, MSB first. n must be in 0..64.
func (w *BitWriter) WriteBits(val uint64, n int) {
	for i := n - 1; 0 <= i; i -= 1 {
		w.WriteBit(uint8((val >> uint(i)) & 1))
	}
}

// Flush pads the pending partial byte with zero bits.
func (w *BitWriter) Flush() {
	if 0 < w.bits {
		w.buf = append(w.buf, w.cache)
		w.bits = 0
		w.cache = 0
	}
}

// Bytes returns the completed bytes. Call Flush first to include a partial byte.
func (w *BitWriter) Bytes() []byte {
	return w.buf
}

func (w *BitWriter) Len() int {
	return len(w.buf)
}

// BitLen is the number of bits written so far, including unflushed ones.
func (w *BitWriter) BitLen() int {
	return len(w.buf)*8 + int(w.bits)
}

func NewBitWriter(capacity int) *BitWriter {
	return &BitWriter{buf: make([]byte, 0, capacity)}
}

// BitReader reads bits MSB first. Reads past the end yield zero bits and are
// counted in Overrun.
type BitReader struct {
	data    []byte
	pos     int
	overrun int
}

func (r *BitReader) ReadBit() uint8 {
	byteIndex := r.pos >> 3
	if len(r.data) <= byteIndex {
		r.overrun += 1
		return 0
	}
	bit := (r.data[byteIndex] >> (7 - uint(r.pos&7))) & 1
	r.pos += 1
	return bit
}

// ReadBits reads n bits MSB first. n must be in 0..64.
func (r *BitReader) ReadBits(n int) uint64 {
	val := uint64(0)
	for i := 0; i < n; i += 1 {
		val = (val << 1) | uint64(r.ReadBit())
	}
	return val
}

// Position returns the number of bits consumed from the buffer.
func (r *BitReader) Position() int {
	return r.pos
}

func (r *BitReader) Remaining() int {
	return len(r.data)*8 - r.pos
}

// Overrun returns how many bits were requested beyond the end of the buffer.
func (r *BitReader) Overrun() int {
	return r.overrun
}

func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}
