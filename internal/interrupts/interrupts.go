package interrupts

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0), which is
	// requested every time the PPU enters VBlank mode.
	VBlankFlag uint8 = 1 << iota
	// LCDFlag is the LCD STAT interrupt flag (bit 1), which is
	// requested by the STAT register when one of its enabled
	// conditions (mode entry, LY=LYC) is met.
	LCDFlag
	// TimerFlag is the Timer interrupt flag (bit 2), which is
	// requested when TIMA overflows.
	TimerFlag
	// SerialFlag is the Serial interrupt flag (bit 3), which is
	// requested when a serial transfer completes.
	SerialFlag
	// JoypadFlag is the Joypad interrupt flag (bit 4), which is
	// requested when a button line goes low.
	JoypadFlag
)

// flagMask covers the 5 meaningful bits of IF and IE.
const flagMask = 0x1F

// Service holds the Interrupt Flag (IF) and Interrupt Enable (IE)
// registers. Components request interrupts by setting bits in Flag;
// the CPU is the sole consumer, clearing bits as it services them
// through Vector.
//
// Priority follows the bit index ascending: VBlank(0) > LCD(1) >
// Timer(2) > Serial(3) > Joypad(4). Each bit's vector is
// 0x0040 + 8 * bit.
type Service struct {
	Flag   uint8 // interrupt flag register (IF, 0xFF0F)
	Enable uint8 // interrupt enable register (IE, 0xFFFF)
}

// NewService returns a new Service with no interrupts requested
// or enabled.
func NewService() *Service {
	return &Service{}
}

// Request requests the specified interrupt, by setting the
// corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// HasPending returns true if any interrupt is both requested and
// enabled, regardless of the CPU's master enable.
func (s *Service) HasPending() bool {
	return s.Enable&s.Flag&flagMask != 0
}

// Vector returns the vector of the highest priority interrupt that
// is both requested and enabled, clearing its Flag bit, or 0 if no
// such interrupt exists.
func (s *Service) Vector() uint16 {
	if !s.HasPending() {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag ^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// ReadFlag returns the IF register as seen on the bus; the upper
// 3 bits are always set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | ^uint8(flagMask)
}

// WriteFlag sets the IF register from a bus write.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & flagMask
}
