package ppu

// pixelFIFO is a fixed 16-slot ring buffer of 2-bit colour indices,
// filled 8 pixels at a time by the fetcher and drained one pixel per
// dot by the renderer.
type pixelFIFO struct {
	data [16]uint8
	head int
	tail int
	size int
}

// push appends a pixel. The fetcher only pushes while at least 8
// slots are free, so a full FIFO indicates a bug; the pixel is
// dropped rather than corrupting the ring.
func (f *pixelFIFO) push(value uint8) {
	if f.size == len(f.data) {
		return
	}
	f.data[f.head] = value
	f.head = (f.head + 1) % len(f.data)
	f.size++
}

// pop removes and returns the oldest pixel; ok is false when the
// FIFO is empty.
func (f *pixelFIFO) pop() (value uint8, ok bool) {
	if f.size == 0 {
		return 0, false
	}
	value = f.data[f.tail]
	f.tail = (f.tail + 1) % len(f.data)
	f.size--
	return value, true
}

func (f *pixelFIFO) len() int {
	return f.size
}

func (f *pixelFIFO) clear() {
	f.head = 0
	f.tail = 0
	f.size = 0
}
