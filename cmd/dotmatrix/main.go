package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/dotmatrix-emu/dotmatrix/internal/gameboy"
	"github.com/dotmatrix-emu/dotmatrix/internal/ppu/palette"
	"github.com/dotmatrix-emu/dotmatrix/pkg/display"
	"github.com/dotmatrix-emu/dotmatrix/pkg/log"
	"github.com/dotmatrix-emu/dotmatrix/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The ROM file to load")
	bootROM := flag.String("boot", "", "The boot ROM file to load")
	paletteName := flag.String("palette", "greyscale", "The palette to use. Can be greyscale or green")
	scale := flag.Int("scale", 4, "The window scale factor")
	fifo := flag.Bool("fifo", false, "Use the fetcher/FIFO background renderer")
	screenshot := flag.String("screenshot", "", "Render one frame, save it as a PNG and exit")
	testing := flag.Bool("testing", false, "Run headless with serial output on stdout")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := log.New()
	if *verbose {
		logger = log.NewVerbose()
	}

	if *romFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatal(err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *fifo {
		opts = append(opts, gameboy.WithPixelPipeline())
	}
	if *testing {
		opts = append(opts, gameboy.WithSerialOutput(os.Stdout))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Fatal(err)
	}

	switch *paletteName {
	case "greyscale":
		palette.Current = palette.Greyscale
	case "green":
		palette.Current = palette.Green
	default:
		logger.Fatal("unknown palette ", *paletteName)
	}

	if *screenshot != "" {
		// give the boot ROM (if any) a moment to draw
		for i := 0; i < 4; i++ {
			gb.Frame()
		}
		if err := gb.Screenshot(*screenshot, *scale); err != nil {
			logger.Fatal(err)
		}
		return
	}

	if *testing {
		for {
			gb.Frame()
		}
	}

	window, err := display.NewWindow("dotmatrix", *scale)
	if err != nil {
		logger.Fatal(err)
	}
	defer window.Close()

	if err := gb.Run(context.Background(), window); err != nil && !errors.Is(err, display.ErrClosed) {
		logger.Fatal(err)
	}
}
