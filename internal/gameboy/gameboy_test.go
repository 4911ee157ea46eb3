package gameboy

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotmatrix-emu/dotmatrix/internal/ppu"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
	"github.com/stretchr/testify/assert"
)

// testROM builds a minimal 32 KiB image with a valid header and the
// given program at the entry point.
func testROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:], "TEST")
	rom[0x147] = 0x00 // no mapper
	rom[0x148] = 0x00 // 32 KiB
	copy(rom[0x100:], program)
	return rom
}

func newTestGameBoy(t *testing.T, program ...uint8) *GameBoy {
	t.Helper()
	gb, err := New(testROM(program...), WithLogger(log.NewNullLogger()))
	if err != nil {
		t.Fatal(err)
	}
	return gb
}

func TestNewRejectsBadROM(t *testing.T) {
	_, err := New([]byte{0x00}, WithLogger(log.NewNullLogger()))
	assert.Error(t, err)

	rom := testROM()
	rom[0x147] = 0x0B // unsupported mapper
	_, err = New(rom, WithLogger(log.NewNullLogger()))
	assert.Error(t, err)
}

func TestBootSkipState(t *testing.T) {
	gb := newTestGameBoy(t)
	assert.Equal(t, uint16(0x0100), gb.CPU.PC)
	assert.Equal(t, uint16(0x01B0), gb.CPU.AF.Uint16())
	assert.Equal(t, uint8(0x91), gb.MMU.Read8(ppu.LCDC))
	assert.Equal(t, uint8(0xFC), gb.MMU.Read8(ppu.BGP))
}

func TestStepFansOutCycles(t *testing.T) {
	// NOP is one machine cycle: 4 T-cycles reach the bus and the DIV
	// accumulator
	gb := newTestGameBoy(t, 0x00)
	ticks := gb.Step()
	if ticks != 4 {
		t.Errorf("expecting 4 ticks, got %d", ticks)
	}
	if gb.CPU.PC != 0x0101 {
		t.Errorf("expecting PC 0x0101, got %#04x", gb.CPU.PC)
	}
}

func TestLoadImmediateEndToEnd(t *testing.T) {
	// LD BC, 0x1234 is three bytes and three machine cycles
	gb := newTestGameBoy(t, 0x01, 0x34, 0x12)
	ticks := gb.Step()
	if ticks != 12 {
		t.Errorf("expecting 12 ticks, got %d", ticks)
	}
	if gb.CPU.BC.Uint16() != 0x1234 {
		t.Errorf("expecting BC 0x1234, got %#04x", gb.CPU.BC.Uint16())
	}
	if gb.CPU.PC != 0x0103 {
		t.Errorf("expecting PC 0x0103, got %#04x", gb.CPU.PC)
	}
}

func TestProgramExecution(t *testing.T) {
	// LD A, 0x42; LD (0xC000), A; JR -3
	gb := newTestGameBoy(t, 0x3E, 0x42, 0xEA, 0x00, 0xC0, 0x18, 0xFD)
	gb.Step()
	gb.Step()
	if got := gb.MMU.Read8(0xC000); got != 0x42 {
		t.Errorf("expecting 0x42 at 0xC000, got %#02x", got)
	}
	gb.Step()
	if gb.CPU.PC != 0x0102 {
		t.Errorf("expecting JR back to 0x0102, got %#04x", gb.CPU.PC)
	}
}

func TestFrameTiming(t *testing.T) {
	// a frame's worth of cycles lands the PPU back at the top of the
	// visible region with VBlank requested along the way
	gb := newTestGameBoy(t, 0x18, 0xFE) // JR -2
	gb.Frame()
	if gb.Interrupts.Flag&0x01 == 0 {
		t.Error("expecting VBlank requested during the frame")
	}
	if gb.cycle >= CyclesPerFrame {
		t.Errorf("expecting cycle carry below a frame, got %d", gb.cycle)
	}
}

func TestSerialOutput(t *testing.T) {
	var out bytes.Buffer
	// LD A, 'k'; LDH (0x01), A; LD A, 0x81; LDH (0x02), A; JR -2
	rom := testROM(
		0x3E, 'k',
		0xE0, 0x01,
		0x3E, 0x81,
		0xE0, 0x02,
		0x18, 0xFE,
	)
	gb, err := New(rom, WithLogger(log.NewNullLogger()), WithSerialOutput(&out))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		gb.Step()
	}
	assert.Equal(t, "k", out.String())
}

func TestBootROMOverlay(t *testing.T) {
	boot := make([]byte, 0x100)
	boot[0x00] = 0x3C // INC A
	gb, err := New(testROM(), WithLogger(log.NewNullLogger()), WithBootROM(boot))
	if err != nil {
		t.Fatal(err)
	}
	// with a boot ROM installed execution starts at 0x0000
	assert.Equal(t, uint16(0x0000), gb.CPU.PC)
	gb.Step()
	assert.Equal(t, uint8(0x01), gb.CPU.A)
}

func TestFrameInterval(t *testing.T) {
	// one frame of wall clock at ~59.7 Hz
	assert.InDelta(t, float64(time.Second)/FrameRate, float64(frameInterval), 1)
}

// stopSink counts frames and fails with its configured error.
type stopSink struct {
	frames int
	err    error
}

func (s *stopSink) Render([ppu.ScreenHeight][ppu.ScreenWidth]uint8) error {
	s.frames++
	return s.err
}

func TestRunStopsOnSinkError(t *testing.T) {
	gb := newTestGameBoy(t, 0x18, 0xFE)
	sink := &stopSink{err: errors.New("window closed")}
	err := gb.Run(context.Background(), sink)
	assert.Equal(t, sink.err, err)
	assert.Equal(t, 1, sink.frames)
}

func TestRunHonoursContext(t *testing.T) {
	gb := newTestGameBoy(t, 0x18, 0xFE)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &stopSink{}
	err := gb.Run(ctx, sink)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sink.frames)
}

func TestScreenshot(t *testing.T) {
	gb := newTestGameBoy(t, 0x18, 0xFE)
	gb.Frame()

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := gb.Screenshot(path, 2); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 288, img.Bounds().Dy())
}

func TestPixelPipelineOption(t *testing.T) {
	gb, err := New(testROM(0x18, 0xFE), WithLogger(log.NewNullLogger()), WithPixelPipeline())
	if err != nil {
		t.Fatal(err)
	}
	// both renderers blank the frame to shade 0 with an empty tile map
	frame := gb.Frame()
	if frame[72][80] != 0 {
		t.Errorf("expecting blank frame, got shade %d", frame[72][80])
	}
}
