// Package mmu provides the memory management unit: the single router
// for the Game Boy's 16-bit address space. Every bus access is
// dispatched to the cartridge, VRAM/OAM, work RAM, high RAM or the
// memory-mapped registers, and elapsed machine time is fanned out to
// the timer and the PPU.
package mmu

import (
	"io"

	"github.com/dotmatrix-emu/dotmatrix/internal/cartridge"
	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/internal/ppu"
	"github.com/dotmatrix-emu/dotmatrix/internal/timer"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

// Memory is the bus contract composed by the MMU: byte and
// little-endian word access, plus the cycle fan-out that drives the
// clocked components.
type Memory interface {
	Read8(address uint16) uint8
	Write8(address uint16, value uint8)
	Read16(address uint16) uint16
	Write16(address uint16, value uint16)
	Cycle(ticks uint32) uint32
}

// Register addresses handled directly by the MMU.
const (
	P1   = 0xFF00 // joypad select/input
	SB   = 0xFF01 // serial transfer data
	SC   = 0xFF02 // serial transfer control
	IF   = 0xFF0F // interrupt flag
	DMA  = 0xFF46 // OAM DMA source page
	BDIS = 0xFF50 // boot ROM disable
)

// MMU routes the 64 KiB address space.
//
//	0000-3FFF  cartridge ROM, fixed bank (boot ROM overlay while enabled)
//	4000-7FFF  cartridge ROM, switchable bank
//	8000-9FFF  PPU VRAM
//	A000-BFFF  cartridge RAM
//	C000-DFFF  work RAM, mirrored at E000-FDFF
//	FE00-FE9F  PPU OAM
//	FEA0-FEFF  prohibited, reads 0x00
//	FF00-FF7F  I/O registers
//	FF80-FFFE  high RAM
//	FFFF       interrupt enable
type MMU struct {
	Cart  cartridge.Cartridge
	Video *ppu.PPU
	Timer *timer.Controller
	IRQ   *interrupts.Service

	wram [0x2000]uint8
	hram [0x7F]uint8
	io   [0x80]uint8

	bootROM     []byte
	bootROMDone bool

	dma        uint8
	serialData uint8

	// SerialOut receives every byte pushed through the serial port
	// with control value 0x81, the sink test ROMs print through.
	SerialOut io.Writer

	log log.Logger
}

// NewMMU returns a new MMU routing to the given components.
func NewMMU(cart cartridge.Cartridge, video *ppu.PPU, tim *timer.Controller, irq *interrupts.Service, logger log.Logger) *MMU {
	return &MMU{
		Cart:  cart,
		Video: video,
		Timer: tim,
		IRQ:   irq,
		log:   logger,
	}
}

// SetBootROM installs a boot ROM image, overlaid over 0x0000-0x00FF
// until a write to BDIS unmaps it.
func (m *MMU) SetBootROM(rom []byte) {
	m.bootROM = rom
	m.bootROMDone = false
}

// BootROMDone reports whether the boot ROM has been unmapped.
func (m *MMU) BootROMDone() bool {
	return m.bootROM == nil || m.bootROMDone
}

// Read8 reads a byte from the given address.
func (m *MMU) Read8(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if address < 0x100 && !m.BootROMDone() {
			// a truncated boot image reads open bus past its end
			if int(address) < len(m.bootROM) {
				return m.bootROM[address]
			}
			return 0xFF
		}
		return m.Cart.Read(address)
	case address < 0xA000:
		return m.Video.Read(address)
	case address < 0xC000:
		return m.Cart.Read(address)
	case address < 0xFE00:
		// echo RAM mirrors 0xC000-0xDDFF
		return m.wram[address&0x1FFF]
	case address < 0xFEA0:
		return m.Video.Read(address)
	case address < 0xFF00:
		// prohibited area; DMG returns 0x00
		return 0x00
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.hram[address-0xFF80]
	default:
		return m.IRQ.Enable
	}
}

// Write8 writes a byte to the given address.
func (m *MMU) Write8(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.Write(address, value)
	case address < 0xA000:
		m.Video.Write(address, value)
	case address < 0xC000:
		m.Cart.Write(address, value)
	case address < 0xFE00:
		m.wram[address&0x1FFF] = value
	case address < 0xFEA0:
		m.Video.Write(address, value)
	case address < 0xFF00:
		m.log.Debugf("mmu: write to prohibited address %#04x dropped", address)
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.hram[address-0xFF80] = value
	default:
		m.IRQ.Enable = value
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch {
	case address == P1:
		// no joypad attached: select bits as written, input lines high
		return m.io[0]&0x30 | 0xCF
	case address == SB:
		return m.serialData
	case address >= timer.DIV && address <= timer.TAC:
		return m.Timer.Read(address)
	case address == IF:
		return m.IRQ.ReadFlag()
	case address == DMA:
		return m.dma
	case address >= ppu.LCDC && address <= ppu.WX:
		return m.Video.Read(address)
	default:
		return m.io[address-0xFF00]
	}
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch {
	case address == SB:
		m.serialData = value
	case address == SC:
		m.io[address-0xFF00] = value
		// a started transfer with the internal clock doubles as a
		// debug sink for test ROMs
		if value == 0x81 {
			if m.SerialOut != nil {
				m.SerialOut.Write([]byte{m.serialData})
			}
			m.IRQ.Request(interrupts.SerialFlag)
		}
	case address >= timer.DIV && address <= timer.TAC:
		m.Timer.Write(address, value)
	case address == IF:
		m.IRQ.WriteFlag(value)
	case address == DMA:
		m.dma = value
		m.doDMA(value)
	case address == BDIS:
		// any write unmaps the boot ROM
		m.bootROMDone = true
	case address >= ppu.LCDC && address <= ppu.WX:
		m.Video.Write(address, value)
	default:
		m.io[address-0xFF00] = value
	}
}

// doDMA copies a 160 byte page into OAM. The transfer bypasses the
// PPU's mode lock on both sides, like the dedicated DMA engine does.
func (m *MMU) doDMA(page uint8) {
	src := uint16(page) << 8
	for i := uint16(0); i < 0xA0; i++ {
		addr := src + i
		var value uint8
		if addr >= 0x8000 && addr < 0xA000 {
			value = m.Video.ReadVRAM(addr - 0x8000)
		} else {
			value = m.Read8(addr)
		}
		m.Video.WriteOAM(uint8(i), value)
	}
}

// Read16 reads a little-endian word: low byte at address, high byte
// at address+1.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read8(address)) | uint16(m.Read8(address+1))<<8
}

// Write16 writes a little-endian word.
func (m *MMU) Write16(address uint16, value uint16) {
	m.Write8(address, uint8(value))
	m.Write8(address+1, uint8(value>>8))
}

// Cycle forwards elapsed T-cycles to the timer and the PPU.
func (m *MMU) Cycle(ticks uint32) uint32 {
	m.Timer.Cycle(ticks)
	m.Video.Cycle(ticks)
	return ticks
}
