package ppu

import (
	"sort"

	"github.com/dotmatrix-emu/dotmatrix/pkg/utils"
)

// renderScanline composes the line LY into the frame buffer. It runs
// once per line, at the transition from pixel transfer to HBlank.
func (p *PPU) renderScanline() {
	if p.ly >= ScreenHeight {
		return
	}

	if p.usePipeline {
		p.renderBackgroundFIFO()
	} else {
		p.renderBackground()
	}
	windowDrawn := p.renderWindow()
	p.renderSprites()

	if windowDrawn {
		p.windowLine++
	}
}

// shade maps a 2-bit colour index through an 8-bit palette register.
func shade(palette uint8, index uint8) uint8 {
	return (palette >> (index * 2)) & 0x03
}

// tileRowAddress resolves the VRAM offset of a tile's row using
// either the unsigned 0x8000 method or the signed 0x9000 method,
// per LCDC bit 4.
func (p *PPU) tileRowAddress(tileID uint8, row uint8) uint16 {
	var addr uint16
	if p.tileDataUnsigned() {
		addr = 0x8000 + uint16(tileID)*16
	} else {
		addr = uint16(0x9000 + int32(int8(tileID))*16)
	}
	return addr - 0x8000 + uint16(row)*2
}

// tilePixel extracts the 2-bit colour index of pixel x (0 = leftmost)
// from a tile row's two data bytes.
func tilePixel(lo, hi uint8, x uint8) uint8 {
	bit := 7 - x
	return utils.GetBit(hi, bit)<<1 | utils.GetBit(lo, bit)
}

// renderBackground draws the 160 background pixels of line LY,
// recording the pre-palette colour index for sprite priority.
func (p *PPU) renderBackground() {
	if !p.backgroundEnabled() {
		for x := 0; x < ScreenWidth; x++ {
			p.lineIndex[x] = 0
			p.frame[p.ly][x] = 0
		}
		return
	}

	mapBase := p.backgroundTileMap()
	y := p.ly + p.scy // wraps around the 256 pixel map
	row := uint16(y / 8)

	for x := 0; x < ScreenWidth; x++ {
		mx := uint8(x) + p.scx
		col := uint16(mx / 8)

		tileID := p.vram[mapBase-0x8000+row*32+col]
		addr := p.tileRowAddress(tileID, y%8)
		index := tilePixel(p.vram[addr], p.vram[addr+1], mx%8)

		p.lineIndex[x] = index
		p.frame[p.ly][x] = shade(p.bgp, index)
	}
}

// renderWindow overlays the window on line LY, if it is enabled and
// reaches this line. Reports whether any window pixel was drawn, so
// the caller can advance the internal window line counter.
func (p *PPU) renderWindow() bool {
	if !p.windowEnabled() || !p.backgroundEnabled() {
		return false
	}
	if p.wy > p.ly || p.wx > 166 {
		return false
	}

	mapBase := p.windowTileMap()
	row := uint16(p.windowLine / 8)

	// WX holds the window's left edge plus 7
	startX := int(p.wx) - 7
	drawn := false
	for x := startX; x < ScreenWidth; x++ {
		if x < 0 {
			continue
		}
		wx := uint8(x - startX)
		col := uint16(wx / 8)

		tileID := p.vram[mapBase-0x8000+row*32+col]
		addr := p.tileRowAddress(tileID, p.windowLine%8)
		index := tilePixel(p.vram[addr], p.vram[addr+1], wx%8)

		p.lineIndex[x] = index
		p.frame[p.ly][x] = shade(p.bgp, index)
		drawn = true
	}
	return drawn
}

// sprite is one OAM entry, as collected during the line scan.
type sprite struct {
	y     int // top edge on screen
	x     int // left edge on screen
	tile  uint8
	attrs uint8
	index int // OAM slot, for priority tie-breaks
}

// Sprite attribute bits.
const (
	spriteAttrPalette  = 4
	spriteAttrFlipX    = 5
	spriteAttrFlipY    = 6
	spriteAttrPriority = 7
)

// renderSprites overlays up to 10 sprites on line LY. Lower X wins
// overlap, ties broken by lower OAM index; drawing happens in reverse
// priority order so the winner lands last.
func (p *PPU) renderSprites() {
	if !p.spritesEnabled() {
		return
	}

	height := p.spriteHeight()
	line := int(p.ly)

	// hardware keeps the first 10 matches in OAM order
	sprites := make([]sprite, 0, 10)
	for i := 0; i < 40 && len(sprites) < 10; i++ {
		s := sprite{
			y:     int(p.oam[i*4]) - 16,
			x:     int(p.oam[i*4+1]) - 8,
			tile:  p.oam[i*4+2],
			attrs: p.oam[i*4+3],
			index: i,
		}
		if line >= s.y && line < s.y+height {
			sprites = append(sprites, s)
		}
	}

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].x < sprites[j].x
	})

	for i := len(sprites) - 1; i >= 0; i-- {
		s := sprites[i]

		row := uint8(line - s.y)
		if utils.TestBit(s.attrs, spriteAttrFlipY) {
			row = uint8(height-1) - row
		}

		tile := s.tile
		if height == 16 {
			// bit 0 of the tile id is ignored for 8x16 sprites
			tile &= 0xFE
			if row >= 8 {
				tile |= 0x01
				row -= 8
			}
		}

		// sprites always use the unsigned 0x8000 addressing
		addr := uint16(tile)*16 + uint16(row)*2
		lo, hi := p.vram[addr], p.vram[addr+1]

		palette := p.obp0
		if utils.TestBit(s.attrs, spriteAttrPalette) {
			palette = p.obp1
		}

		for px := uint8(0); px < 8; px++ {
			x := s.x + int(px)
			if x < 0 || x >= ScreenWidth {
				continue
			}

			bit := px
			if utils.TestBit(s.attrs, spriteAttrFlipX) {
				bit = 7 - px
			}
			index := tilePixel(lo, hi, bit)
			if index == 0 {
				// colour 0 is transparent for sprites
				continue
			}
			if utils.TestBit(s.attrs, spriteAttrPriority) && p.lineIndex[x] != 0 {
				// behind-background sprites only show over colour 0
				continue
			}

			p.frame[p.ly][x] = shade(palette, index)
		}
	}
}
