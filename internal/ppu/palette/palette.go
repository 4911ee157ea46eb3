package palette

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green attempts to emulate the original colour palette as it
	// would have appeared on the original Game Boy.
	Green
)

// Palette maps the 4 DMG shades to RGB values.
type Palette struct {
	Colors [4][3]uint8
}

// Current is the currently selected palette.
var Current = Greyscale

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Greyscale
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	// Green
	{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
}

// GetColour returns the colour for the given shade (0-3) in the
// Current palette.
func GetColour(shade uint8) [3]uint8 {
	return Palettes[Current].Colors[shade&0x03]
}
