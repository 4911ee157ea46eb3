// Package gameboy assembles the emulated components into a complete
// DMG and drives them: the CPU executes one instruction at a time and
// the elapsed cycles are fanned out over the bus to the timer and the
// PPU.
package gameboy

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/dotmatrix-emu/dotmatrix/internal/cartridge"
	"github.com/dotmatrix-emu/dotmatrix/internal/cpu"
	"github.com/dotmatrix-emu/dotmatrix/internal/interrupts"
	"github.com/dotmatrix-emu/dotmatrix/internal/mmu"
	"github.com/dotmatrix-emu/dotmatrix/internal/ppu"
	"github.com/dotmatrix-emu/dotmatrix/internal/ppu/palette"
	"github.com/dotmatrix-emu/dotmatrix/internal/timer"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
	"github.com/dotmatrix-emu/dotmatrix/pkg/utils"
)

const (
	// ClockSpeed is the master clock of the DMG in Hz.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles per PPU frame.
	CyclesPerFrame = 70224
	// FrameRate is the refresh rate the paced loop targets.
	FrameRate = float64(ClockSpeed) / float64(CyclesPerFrame)
	// frameInterval is the wall-clock duration of one frame.
	frameInterval = time.Second * CyclesPerFrame / ClockSpeed
)

// GameBoy wires the CPU, bus, PPU, timer and interrupt controller
// together. It is the entry point of the emulation core.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Timer      *timer.Controller
	Interrupts *interrupts.Service

	cart cartridge.Cartridge
	log  log.Logger

	// cycle counts T-cycles into the current frame
	cycle uint32
}

// New builds a GameBoy around the given ROM image. The ROM's header
// is decoded to pick the mapper; an unsupported or malformed image is
// an error.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cfg := &config{
		logger: log.New(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cart, err := cartridge.New(rom, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	irq := interrupts.NewService()
	timerCtl := timer.NewController(irq)

	var ppuOpts []ppu.Opt
	if cfg.pixelPipeline {
		ppuOpts = append(ppuOpts, ppu.WithPixelPipeline())
	}
	video := ppu.New(irq, cfg.logger, ppuOpts...)

	memBus := mmu.NewMMU(cart, video, timerCtl, irq, cfg.logger)
	memBus.SerialOut = cfg.serialOut
	core := cpu.NewCPU(memBus, irq, cfg.logger)

	gb := &GameBoy{
		CPU:        core,
		MMU:        memBus,
		PPU:        video,
		Timer:      timerCtl,
		Interrupts: irq,
		cart:       cart,
		log:        cfg.logger,
	}

	header := cart.Header()
	gb.log.Infof("loaded %q (%s, ROM %d KiB, RAM %d KiB)",
		cart.Title(), header.CartridgeType, header.ROMSize/1024, header.RAMSize/1024)

	if cfg.bootROM != nil {
		memBus.SetBootROM(cfg.bootROM)
	} else {
		gb.skipBoot()
	}

	return gb, nil
}

// skipBoot seeds the state the DMG boot ROM leaves behind, so
// execution can start at the cartridge entry point directly.
func (g *GameBoy) skipBoot() {
	g.CPU.SkipBoot()
	g.MMU.Write8(ppu.LCDC, 0x91)
	g.MMU.Write8(ppu.BGP, 0xFC)
	g.MMU.Write8(ppu.OBP0, 0xFF)
	g.MMU.Write8(ppu.OBP1, 0xFF)
}

// Step runs one CPU cycle and fans the elapsed T-cycles out over the
// bus, returning them.
func (g *GameBoy) Step() uint32 {
	ticks := g.CPU.Cycle()
	g.MMU.Cycle(ticks)
	g.cycle += ticks
	return ticks
}

// Frame steps the emulation for one frame's worth of cycles and
// returns the frame the PPU prepared.
func (g *GameBoy) Frame() [ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	for g.cycle < CyclesPerFrame {
		g.Step()
	}
	g.cycle -= CyclesPerFrame
	return g.PPU.PreparedFrame
}

// Screenshot writes the last prepared frame to the given path as a
// PNG, mapped through the selected palette and scaled up.
func (g *GameBoy) Screenshot(path string, scale int) error {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgb := palette.GetColour(g.PPU.PreparedFrame[y][x])
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF})
		}
	}
	return utils.SaveImage(img, path, scale)
}

// FrameSink receives each prepared frame of a paced run.
type FrameSink interface {
	Render(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8) error
}

// Run drives the emulation at the hardware frame rate, pushing each
// frame into the sink, until the context is cancelled or the sink
// fails.
func (g *GameBoy) Run(ctx context.Context, sink FrameSink) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sink.Render(g.Frame()); err != nil {
				return err
			}
		}
	}
}

// config collects the construction options.
type config struct {
	logger        log.Logger
	bootROM       []byte
	serialOut     io.Writer
	pixelPipeline bool
}

// Opt configures a GameBoy under construction.
type Opt func(*config)

// WithLogger routes component logging to the given logger.
func WithLogger(l log.Logger) Opt {
	return func(c *config) { c.logger = l }
}

// WithBootROM overlays a 256 byte boot ROM image; without it the
// post-boot register state is seeded directly.
func WithBootROM(rom []byte) Opt {
	return func(c *config) { c.bootROM = rom }
}

// WithSerialOutput wires the serial debug sink to the given writer,
// which is how test ROMs report their results.
func WithSerialOutput(w io.Writer) Opt {
	return func(c *config) { c.serialOut = w }
}

// WithPixelPipeline selects the fetcher/FIFO background renderer over
// the scanline compositor.
func WithPixelPipeline() Opt {
	return func(c *config) { c.pixelPipeline = true }
}
