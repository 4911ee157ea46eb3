package ppu

// Fetcher states. Each state takes 2 dots, the fetcher running at
// half the PPU clock.
const (
	readTileID = iota
	readTileData0
	readTileData1
	pushToFIFO
)

// fetcher walks the background map tile by tile, decoding one 8-pixel
// row of planar tile data at a time into the pixel FIFO.
type fetcher struct {
	fifo pixelFIFO

	ticks int
	state int

	// mapRow is the VRAM offset of the background map row being
	// fetched; startCol the first tile column, from SCX.
	mapRow   uint16
	startCol uint8
	tileLine uint8

	tileIndex uint8
	tileID    uint8
	tileData  [8]uint8
}

// start resets the fetcher to the beginning of a map row. tileLine
// selects which of the tile's 8 pixel rows to decode.
func (f *fetcher) start(mapRow uint16, startCol, tileLine uint8) {
	f.mapRow = mapRow
	f.startCol = startCol
	f.tileLine = tileLine
	f.tileIndex = 0
	f.state = readTileID
	f.ticks = 0

	// the FIFO likely holds stale pixels from the previous line
	f.fifo.clear()
}

// tick advances the fetcher state machine by one dot.
func (f *fetcher) tick(p *PPU) {
	f.ticks++
	if f.ticks < 2 {
		return
	}
	f.ticks = 0

	switch f.state {
	case readTileID:
		// the map row wraps every 32 tiles
		col := uint16((f.startCol + f.tileIndex) & 0x1F)
		f.tileID = p.vram[f.mapRow+col]
		f.state = readTileData0
	case readTileData0:
		f.readTileLine(0, p)
		f.state = readTileData1
	case readTileData1:
		f.readTileLine(1, p)
		f.state = pushToFIFO
	case pushToFIFO:
		if f.fifo.len() <= 8 {
			// pixels were decoded least significant bit first, so
			// push in reverse to emit left to right
			for i := 7; i >= 0; i-- {
				f.fifo.push(f.tileData[i])
			}
			f.tileIndex++
			f.state = readTileID
		}
	}
}

// readTileLine reads one bit plane of the current tile row. Plane 0
// seeds the low bit of each pixel, plane 1 contributes the high bit.
func (f *fetcher) readTileLine(bitPlane uint8, p *PPU) {
	addr := p.tileRowAddress(f.tileID, f.tileLine)
	pixelData := p.vram[addr+uint16(bitPlane)]

	for bitPos := 0; bitPos < 8; bitPos++ {
		bit := (pixelData >> bitPos) & 0x01
		if bitPlane == 0 {
			f.tileData[bitPos] = bit
		} else {
			f.tileData[bitPos] |= bit << 1
		}
	}
}

// renderBackgroundFIFO composes the background of line LY by running
// the fetcher and FIFO dot by dot, shifting out one pixel per dot
// once pixels are available.
func (p *PPU) renderBackgroundFIFO() {
	if !p.backgroundEnabled() {
		for x := 0; x < ScreenWidth; x++ {
			p.lineIndex[x] = 0
			p.frame[p.ly][x] = 0
		}
		return
	}

	y := p.ly + p.scy
	mapRow := p.backgroundTileMap() - 0x8000 + uint16(y/8)*32
	p.fetcher.start(mapRow, p.scx/8, y%8)

	// fine scroll: the first SCX%8 pixels of the leftmost tile are
	// shifted out and discarded
	discard := int(p.scx % 8)

	x := 0
	for x < ScreenWidth {
		p.fetcher.tick(p)
		index, ok := p.fetcher.fifo.pop()
		if !ok {
			continue
		}
		if discard > 0 {
			discard--
			continue
		}
		p.lineIndex[x] = index
		p.frame[p.ly][x] = shade(p.bgp, index)
		x++
	}
}
