// Package ppu implements the Game Boy's picture processing unit: an
// LCD controller that walks a 4-mode state machine per scanline and
// composes a 160x144 frame from background, window and sprite layers.
package ppu

import (
	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
	"github.com/dotmatrix-emu/dotmatrix/pkg/utils"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// LCD modes, in the order they appear in STAT's low 2 bits.
const (
	// ModeHBlank (0) is the horizontal blanking period after a line
	// has been drawn.
	ModeHBlank = iota
	// ModeVBlank (1) covers the 10 virtual scanlines after the last
	// visible line.
	ModeVBlank
	// ModeOAM (2) is the sprite scan at the start of a line; OAM is
	// inaccessible to the CPU.
	ModeOAM
	// ModeVRAM (3) is the pixel transfer; VRAM and OAM are
	// inaccessible to the CPU.
	ModeVRAM
)

// Dot budget per scanline: 80 dots of OAM scan, 172 of pixel
// transfer, 204 of HBlank.
const (
	oamTicks    = 80
	vramTicks   = 172
	hblankTicks = 204
	lineTicks   = 456

	linesPerFrame = 154

	// FrameTicks is the total dot budget of one frame.
	FrameTicks = lineTicks * linesPerFrame
)

// Register addresses.
const (
	LCDC = 0xFF40
	STAT = 0xFF41
	SCY  = 0xFF42
	SCX  = 0xFF43
	LY   = 0xFF44
	LYC  = 0xFF45
	BGP  = 0xFF47
	OBP0 = 0xFF48
	OBP1 = 0xFF49
	WY   = 0xFF4A
	WX   = 0xFF4B
)

// STAT interrupt source bits.
const (
	statHBlankInterrupt = 3
	statVBlankInterrupt = 4
	statOAMInterrupt    = 5
	statLYCInterrupt    = 6
)

// PPU owns VRAM, OAM and the LCD registers, and produces one frame of
// 2-bit shades (already mapped through the BGP/OBP palettes) per
// entry into VBlank.
type PPU struct {
	// Mode is the current LCD mode (0-3), mirrored in STAT's low
	// bits.
	Mode uint8

	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc uint8
	stat uint8
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	// modeClock counts dots into the current mode.
	modeClock uint32

	// windowLine is the window's internal line counter; it only
	// advances on lines where the window was visible.
	windowLine uint8

	// lineIndex holds the pre-palette background/window colour index
	// of the line being composed, consulted for sprite priority.
	lineIndex [ScreenWidth]uint8

	frame [ScreenHeight][ScreenWidth]uint8

	// PreparedFrame is the last completed frame, published on entry
	// into VBlank.
	PreparedFrame [ScreenHeight][ScreenWidth]uint8

	fetcher fetcher
	// usePipeline selects the fetcher/FIFO pixel pipeline over the
	// whole-scanline renderer.
	usePipeline bool

	irq *interrupts.Service
	log log.Logger
}

// New returns a new PPU raising interrupts on the given service.
func New(irq *interrupts.Service, logger log.Logger, opts ...Opt) *PPU {
	p := &PPU{
		irq: irq,
		log: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Opt configures a PPU.
type Opt func(*PPU)

// WithPixelPipeline composes scanlines with the fetcher/FIFO pixel
// pipeline instead of the whole-scanline renderer.
func WithPixelPipeline() Opt {
	return func(p *PPU) {
		p.usePipeline = true
	}
}

// LCDC accessors. Behaviour, not representation, is the contract, so
// the register stays a plain byte with named bit tests.

func (p *PPU) lcdEnabled() bool          { return utils.TestBit(p.lcdc, 7) }
func (p *PPU) windowTileMap() uint16     { return tileMapBase(utils.TestBit(p.lcdc, 6)) }
func (p *PPU) windowEnabled() bool       { return utils.TestBit(p.lcdc, 5) }
func (p *PPU) tileDataUnsigned() bool    { return utils.TestBit(p.lcdc, 4) }
func (p *PPU) backgroundTileMap() uint16 { return tileMapBase(utils.TestBit(p.lcdc, 3)) }
func (p *PPU) spritesEnabled() bool      { return utils.TestBit(p.lcdc, 1) }
func (p *PPU) backgroundEnabled() bool   { return utils.TestBit(p.lcdc, 0) }

func (p *PPU) spriteHeight() int {
	if utils.TestBit(p.lcdc, 2) {
		return 16
	}
	return 8
}

func tileMapBase(high bool) uint16 {
	if high {
		return 0x9C00
	}
	return 0x9800
}

// Read returns the value at the given address: VRAM, OAM or an LCD
// register. CPU reads of VRAM during pixel transfer, and of OAM
// during OAM scan or pixel transfer, see 0xFF.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if p.vramLocked() {
			return 0xFF
		}
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address <= 0xFE9F:
		if p.oamLocked() {
			return 0xFF
		}
		return p.oam[address-0xFE00]
	}

	switch address {
	case LCDC:
		return p.lcdc
	case STAT:
		return 0x80 | p.stat | p.Mode
	case SCY:
		return p.scy
	case SCX:
		return p.scx
	case LY:
		return p.ly
	case LYC:
		return p.lyc
	case BGP:
		return p.bgp
	case OBP0:
		return p.obp0
	case OBP1:
		return p.obp1
	case WY:
		return p.wy
	case WX:
		return p.wx
	}

	p.log.Debugf("ppu: read from unmapped address %#04x", address)
	return 0xFF
}

// Write writes to VRAM, OAM or an LCD register. Writes to locked
// VRAM/OAM are dropped.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if p.vramLocked() {
			return
		}
		p.vram[address-0x8000] = value
		return
	case address >= 0xFE00 && address <= 0xFE9F:
		if p.oamLocked() {
			return
		}
		p.oam[address-0xFE00] = value
		return
	}

	switch address {
	case LCDC:
		wasEnabled := p.lcdEnabled()
		p.lcdc = value
		if wasEnabled && !p.lcdEnabled() {
			// turning the LCD off resets the scan position
			p.ly = 0
			p.windowLine = 0
			p.modeClock = 0
			p.setMode(ModeHBlank)
		} else if !wasEnabled && p.lcdEnabled() {
			p.modeClock = 0
			p.setMode(ModeOAM)
			p.compareLYC()
		}
	case STAT:
		// the low 3 bits (mode, LYC coincidence) are read-only
		p.stat = value&^0x07 | p.stat&0x04
	case SCY:
		p.scy = value
	case SCX:
		p.scx = value
	case LY:
		// read-only
	case LYC:
		p.lyc = value
		p.compareLYC()
	case BGP:
		p.bgp = value
	case OBP0:
		p.obp0 = value
	case OBP1:
		p.obp1 = value
	case WY:
		p.wy = value
	case WX:
		p.wx = value
	default:
		p.log.Debugf("ppu: write to unmapped address %#04x", address)
	}
}

// WriteOAM writes a byte to OAM bypassing the mode lock, for the DMA
// engine's use.
func (p *PPU) WriteOAM(offset uint8, value uint8) {
	if int(offset) < len(p.oam) {
		p.oam[offset] = value
	}
}

// ReadVRAM reads a byte of VRAM bypassing the mode lock, for the DMA
// engine's use.
func (p *PPU) ReadVRAM(offset uint16) uint8 {
	return p.vram[offset&0x1FFF]
}

func (p *PPU) vramLocked() bool {
	return p.lcdEnabled() && p.Mode == ModeVRAM
}

func (p *PPU) oamLocked() bool {
	return p.lcdEnabled() && (p.Mode == ModeOAM || p.Mode == ModeVRAM)
}

// Cycle advances the PPU by the given number of dots. It returns 0
// without advancing when the LCD is disabled, and the consumed dots
// otherwise.
func (p *PPU) Cycle(ticks uint32) uint32 {
	if !p.lcdEnabled() {
		return 0
	}

	p.modeClock += ticks
	for {
		switch p.Mode {
		case ModeOAM:
			if p.modeClock < oamTicks {
				return ticks
			}
			p.modeClock -= oamTicks
			p.setMode(ModeVRAM)
		case ModeVRAM:
			if p.modeClock < vramTicks {
				return ticks
			}
			p.modeClock -= vramTicks
			// the line's pixels are composed at the HBlank edge
			p.renderScanline()
			p.setMode(ModeHBlank)
		case ModeHBlank:
			if p.modeClock < hblankTicks {
				return ticks
			}
			p.modeClock -= hblankTicks
			p.setLY(p.ly + 1)
			if p.ly == ScreenHeight {
				p.setMode(ModeVBlank)
				p.irq.Request(interrupts.VBlankFlag)
				p.PreparedFrame = p.frame
			} else {
				p.setMode(ModeOAM)
			}
		case ModeVBlank:
			if p.modeClock < lineTicks {
				return ticks
			}
			p.modeClock -= lineTicks
			if p.ly+1 == linesPerFrame {
				p.setLY(0)
				p.windowLine = 0
				p.setMode(ModeOAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

// setMode updates the mode bits and raises the STAT interrupt if the
// new mode's source bit is enabled.
func (p *PPU) setMode(mode uint8) {
	p.Mode = mode

	switch mode {
	case ModeHBlank:
		if utils.TestBit(p.stat, statHBlankInterrupt) {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeVBlank:
		if utils.TestBit(p.stat, statVBlankInterrupt) {
			p.irq.Request(interrupts.LCDFlag)
		}
	case ModeOAM:
		if utils.TestBit(p.stat, statOAMInterrupt) {
			p.irq.Request(interrupts.LCDFlag)
		}
	}
}

// setLY updates LY and re-runs the LYC comparison.
func (p *PPU) setLY(line uint8) {
	p.ly = line
	p.compareLYC()
}

func (p *PPU) compareLYC() {
	if p.ly == p.lyc {
		p.stat = utils.SetBit(p.stat, 2)
		if utils.TestBit(p.stat, statLYCInterrupt) {
			p.irq.Request(interrupts.LCDFlag)
		}
	} else {
		p.stat = utils.ClearBit(p.stat, 2)
	}
}
