package ppu

import (
	"testing"

	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
)

func newTestPPU(opts ...Opt) (*PPU, *interrupts.Service) {
	irq := interrupts.NewService()
	return New(irq, log.NewNullLogger(), opts...), irq
}

func TestDisabledLCD(t *testing.T) {
	p, _ := newTestPPU()

	if got := p.Cycle(456); got != 0 {
		t.Errorf("disabled LCD should consume 0 dots, got %d", got)
	}
	if p.Read(LY) != 0 {
		t.Errorf("LY should stay frozen at 0, got %d", p.Read(LY))
	}
}

func TestModeSequence(t *testing.T) {
	p, _ := newTestPPU()
	p.Write(LCDC, 0x91)

	if p.Mode != ModeOAM {
		t.Fatalf("expected OAM scan after enabling, got mode %d", p.Mode)
	}

	p.Cycle(oamTicks)
	if p.Mode != ModeVRAM {
		t.Errorf("expected pixel transfer after %d dots, got mode %d", oamTicks, p.Mode)
	}
	p.Cycle(vramTicks)
	if p.Mode != ModeHBlank {
		t.Errorf("expected HBlank, got mode %d", p.Mode)
	}
	p.Cycle(hblankTicks)
	if p.Mode != ModeOAM || p.Read(LY) != 1 {
		t.Errorf("expected OAM scan of line 1, got mode %d LY %d", p.Mode, p.Read(LY))
	}
}

func TestFrameBudget(t *testing.T) {
	p, irq := newTestPPU()
	p.Write(LCDC, 0x91)

	// a whole frame returns the machine to the OAM scan of line 0
	for i := 0; i < FrameTicks/4; i++ {
		p.Cycle(4)
	}
	if p.Mode != ModeOAM {
		t.Errorf("expected OAM scan after a full frame, got mode %d", p.Mode)
	}
	if got := p.Read(LY); got != 0 {
		t.Errorf("expected LY 0 after a full frame, got %d", got)
	}
	if irq.Flag&interrupts.VBlankFlag == 0 {
		t.Error("frame should have requested the VBlank interrupt")
	}
}

func TestVBlankEntry(t *testing.T) {
	p, irq := newTestPPU()
	p.Write(LCDC, 0x91)

	p.Cycle(lineTicks*ScreenHeight - 1)
	if p.Mode == ModeVBlank {
		t.Fatal("VBlank entered one dot early")
	}
	p.Cycle(1)
	if p.Mode != ModeVBlank {
		t.Fatalf("expected VBlank after %d dots, got mode %d", lineTicks*ScreenHeight, p.Mode)
	}
	if got := p.Read(LY); got != ScreenHeight {
		t.Errorf("expected LY %d, got %d", ScreenHeight, got)
	}
	if irq.Flag&interrupts.VBlankFlag == 0 {
		t.Error("VBlank entry should request the VBlank interrupt")
	}
}

func TestLYCInterrupt(t *testing.T) {
	p, irq := newTestPPU()
	p.Write(LCDC, 0x91)
	p.Write(LYC, 2)
	p.Write(STAT, 1<<statLYCInterrupt)

	p.Cycle(lineTicks * 2)
	if irq.Flag&interrupts.LCDFlag == 0 {
		t.Error("LY=LYC should request the STAT interrupt")
	}
	if p.Read(STAT)&0x04 == 0 {
		t.Error("STAT coincidence flag should be set while LY=LYC")
	}

	p.Cycle(lineTicks)
	if p.Read(STAT)&0x04 != 0 {
		t.Error("STAT coincidence flag should clear when LY moves on")
	}
}

func TestSTATWritePreservesCoincidence(t *testing.T) {
	p, _ := newTestPPU()
	// enabling the LCD runs the LY=LYC comparison at LY=LYC=0
	p.Write(LCDC, 0x91)
	if p.Read(STAT)&0x04 == 0 {
		t.Fatal("STAT coincidence flag should be set while LY=LYC")
	}

	// bit 2 is read-only; a write must not clobber it
	p.Write(STAT, 1<<statLYCInterrupt)
	if p.Read(STAT)&0x04 == 0 {
		t.Error("STAT write should preserve the coincidence flag")
	}
	if p.Read(STAT)&(1<<statLYCInterrupt) == 0 {
		t.Error("STAT write should land in the source bits")
	}
}

func TestSTATModeInterrupts(t *testing.T) {
	p, irq := newTestPPU()
	p.Write(STAT, 1<<statHBlankInterrupt)
	p.Write(LCDC, 0x91)

	p.Cycle(oamTicks + vramTicks)
	if irq.Flag&interrupts.LCDFlag == 0 {
		t.Error("HBlank entry should request the STAT interrupt")
	}
}

func TestVRAMLockedDuringTransfer(t *testing.T) {
	p, _ := newTestPPU()
	p.Write(0x8000, 0x12) // LCD off: VRAM always accessible
	p.Write(LCDC, 0x91)

	p.Cycle(oamTicks) // now in pixel transfer
	if got := p.Read(0x8000); got != 0xFF {
		t.Errorf("VRAM read during transfer should be 0xFF, got %02X", got)
	}
	p.Write(0x8000, 0x34)

	p.Cycle(vramTicks) // HBlank
	if got := p.Read(0x8000); got != 0x12 {
		t.Errorf("expected VRAM write during transfer dropped, got %02X", got)
	}
}

func TestOAMLockedDuringScan(t *testing.T) {
	p, _ := newTestPPU()
	p.Write(0xFE00, 0x12)
	p.Write(LCDC, 0x91)

	if got := p.Read(0xFE00); got != 0xFF {
		t.Errorf("OAM read during scan should be 0xFF, got %02X", got)
	}
	p.Write(0xFE00, 0x34)
	p.Cycle(oamTicks + vramTicks)
	if got := p.Read(0xFE00); got != 0x12 {
		t.Errorf("expected OAM write during scan dropped, got %02X", got)
	}
}
