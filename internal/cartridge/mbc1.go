package cartridge

import (
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

// MemoryBankedCartridge1 implements the MBC1 bank controller: up to
// 2 MiB of ROM in 16 KiB banks and up to 32 KiB of external RAM in
// 8 KiB banks.
//
// The controller keeps a single 7-bit bank register. The low 5 bits
// are set through 0x2000-0x3FFF (a write of 0 selects bank 1), the
// upper 2 bits through 0x4000-0x5FFF. Depending on the banking mode
// the upper bits extend the ROM bank number or select the RAM bank.
type MemoryBankedCartridge1 struct {
	rom []byte
	ram []byte

	bank       uint8
	romBanking bool
	ramEnabled bool

	header Header
	log    log.Logger
}

func newMemoryBankedCartridge1(rom []byte, header Header, logger log.Logger) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		rom:        rom,
		ram:        make([]byte, header.RAMSize),
		bank:       0x01,
		romBanking: true,
		header:     header,
		log:        logger,
	}
}

// romBank returns the effective bank mapped at 0x4000-0x7FFF. In RAM
// banking mode only the low 5 bits take part, limiting ROM to 512 KiB.
func (m *MemoryBankedCartridge1) romBank() uint32 {
	if m.romBanking {
		return uint32(m.bank & 0x7F)
	}
	return uint32(m.bank & 0x1F)
}

// ramBank returns the RAM bank mapped at 0xA000-0xBFFF; fixed to 0
// outside RAM banking mode.
func (m *MemoryBankedCartridge1) ramBank() uint32 {
	if m.romBanking {
		return 0
	}
	return uint32(m.bank&0x60) >> 5
}

// Read returns the byte at the given address, resolving the current
// ROM and RAM banks.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		if int(address) < len(m.rom) {
			return m.rom[address]
		}
		return 0xFF
	case address < 0x8000:
		offset := m.romBank()*0x4000 + uint32(address-0x4000)
		if offset < uint32(len(m.rom)) {
			return m.rom[offset]
		}
		return 0xFF
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		offset := m.ramBank()*0x2000 + uint32(address-0xA000)
		if offset < uint32(len(m.ram)) {
			return m.ram[offset]
		}
		return 0xFF
	}
	return 0xFF
}

// Write drives the controller's registers, or stores to external RAM.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		b := value & 0x1F
		if b == 0x00 {
			// bank 0 is always mapped at 0x0000-0x3FFF, so the
			// controller bumps a 0 select to 1; with the upper bits
			// this also remaps 0x20/0x40/0x60 to 0x21/0x41/0x61
			b = 0x01
		}
		m.bank = m.bank&0x60 | b
	case address < 0x6000:
		m.bank = m.bank&0x9F | (value&0x03)<<5
	case address < 0x8000:
		switch value {
		case 0x00:
			m.romBanking = true
		case 0x01:
			m.romBanking = false
		default:
			// only 0 and 1 are architecturally valid
			m.log.Errorf("mbc1: invalid banking mode %#02x, write ignored", value)
		}
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		offset := m.ramBank()*0x2000 + uint32(address-0xA000)
		if offset < uint32(len(m.ram)) {
			m.ram[offset] = value
		}
	}
}

// Header returns the parsed cartridge header.
func (m *MemoryBankedCartridge1) Header() Header {
	return m.header
}

// Title returns the title from the cartridge header.
func (m *MemoryBankedCartridge1) Title() string {
	return m.header.Title
}
