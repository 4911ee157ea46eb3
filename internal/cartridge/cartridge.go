// Package cartridge implements Game Boy cartridges and their memory
// bank controllers. A cartridge owns the ROM image and any external
// RAM, and handles reads and writes to the 0x0000-0x7FFF and
// 0xA000-0xBFFF address windows.
package cartridge

import (
	"fmt"

	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

// Cartridge is the interface implemented by each supported memory
// bank controller.
type Cartridge interface {
	// Read returns the byte at the given address, which is expected
	// to be in the ranges 0x0000-0x7FFF or 0xA000-0xBFFF.
	Read(address uint16) uint8
	// Write writes to the cartridge. ROM writes drive the bank
	// controller's registers; RAM writes store data.
	Write(address uint16, value uint8)
	// Header returns the parsed cartridge header.
	Header() Header
	// Title returns the title from the cartridge header.
	Title() string
}

// New parses the ROM's header and returns the matching Cartridge
// implementation. It returns an error for a malformed image or an
// unsupported mapper type.
func New(rom []byte, logger log.Logger) (Cartridge, error) {
	h, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	switch h.CartridgeType {
	case ROM:
		return newROMCartridge(rom, h), nil
	case MBC1, MBC1RAM, MBC1RAMBattery:
		return newMemoryBankedCartridge1(rom, h, logger), nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %s", h.CartridgeType)
	}
}
