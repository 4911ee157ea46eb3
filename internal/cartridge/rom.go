package cartridge

// ROMCartridge is a cartridge without a bank controller: reads pass
// straight through to the ROM image, writes are ignored.
type ROMCartridge struct {
	rom    []byte
	header Header
}

func newROMCartridge(rom []byte, header Header) *ROMCartridge {
	return &ROMCartridge{rom: rom, header: header}
}

// Read returns the byte at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if int(address) < len(r.rom) && address < 0x8000 {
		return r.rom[address]
	}
	// no external RAM on a plain ROM cartridge
	return 0xFF
}

// Write does nothing; there is no bank controller to talk to.
func (r *ROMCartridge) Write(address uint16, value uint8) {
}

// Header returns the parsed cartridge header.
func (r *ROMCartridge) Header() Header {
	return r.header
}

// Title returns the title from the cartridge header.
func (r *ROMCartridge) Title() string {
	return r.header.Title
}
