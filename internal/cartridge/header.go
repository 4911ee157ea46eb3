package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge (mapper) type, as encoded at offset 0x147 of
// the header.
type Type uint8

const (
	ROM            Type = 0x00
	MBC1           Type = 0x01
	MBC1RAM        Type = 0x02
	MBC1RAMBattery Type = 0x03
	MBC2           Type = 0x05
	MBC3           Type = 0x11
	MBC5           Type = 0x19
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBattery:
		return "MBC1+RAM+BATTERY"
	case MBC2:
		return "MBC2"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return fmt.Sprintf("UNKNOWN (%#02x)", uint8(t))
}

// headerSize is the end of the cartridge header; a ROM shorter than
// this cannot be parsed.
const headerSize = 0x150

// romSizeInBytes maps the ROM size code at 0x148 to the total ROM
// size. Each step doubles the bank count, starting at 2 banks of
// 16 KiB.
func romSizeInBytes(code uint8) uint32 {
	return uint32(0x8000) << code
}

// ramSizeMap maps the RAM size code at 0x149 to the external RAM size.
var ramSizeMap = map[uint8]uint32{
	0x00: 0,
	0x01: 0x800,
	0x02: 0x2000,
	0x03: 0x8000,
	0x04: 0x20000,
	0x05: 0x10000,
}

// Header is the parsed cartridge header (0x100 - 0x14F).
type Header struct {
	Title           string
	CartridgeType   Type
	ROMSize         uint32
	RAMSize         uint32
	Destination     uint8
	OldLicenseeCode uint8
	NewLicenseeCode string
	raw             [headerSize - 0x100]byte
}

// parseHeader decodes the fixed-offset header fields from the ROM
// image. It fails if the image is too short to contain a header.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < headerSize {
		return Header{}, fmt.Errorf("malformed ROM: %d bytes, need at least %d for the header", len(rom), headerSize)
	}

	h := Header{
		CartridgeType:   Type(rom[0x147]),
		ROMSize:         romSizeInBytes(rom[0x148]),
		Destination:     rom[0x14A],
		OldLicenseeCode: rom[0x14B],
		NewLicenseeCode: string(rom[0x144:0x146]),
	}
	copy(h.raw[:], rom[0x100:headerSize])

	// title is zero padded
	h.Title = strings.TrimRight(string(rom[0x134:0x143]), "\x00")

	if size, ok := ramSizeMap[rom[0x149]]; ok {
		h.RAMSize = size
	}

	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s (%s, ROM %dKiB, RAM %dKiB)", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
