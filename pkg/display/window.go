// Package display presents prepared frames in an SDL2 window. The
// emulation core knows nothing about it; the window implements the
// frame sink the paced loop feeds.
package display

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/dotmatrix-emu/dotmatrix/internal/ppu"
	"github.com/dotmatrix-emu/dotmatrix/internal/ppu/palette"
)

// ErrClosed is returned by Render once the user has closed the
// window.
var ErrClosed = fmt.Errorf("display: window closed")

// Window is an SDL2 window with a streaming texture the size of the
// DMG screen, scaled up by the renderer.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	pixels [ppu.ScreenWidth * ppu.ScreenHeight * 4]byte
}

// NewWindow opens a window at the given integer scale factor.
func NewWindow(title string, scale int) (*Window, error) {
	if scale < 1 {
		scale = 1
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("display: init: %w", err)
	}

	window, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("display: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("display: create renderer: %w", err)
	}

	// nearest neighbour keeps the pixels square
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")
	if err := renderer.SetLogicalSize(ppu.ScreenWidth, ppu.ScreenHeight); err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("display: logical size: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("display: create texture: %w", err)
	}

	return &Window{
		window:   window,
		renderer: renderer,
		texture:  texture,
	}, nil
}

// Render maps the frame's shades through the selected palette and
// presents it, servicing the event queue along the way.
func (w *Window) Render(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8) error {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return ErrClosed
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				return ErrClosed
			}
		}
	}

	i := 0
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgb := palette.GetColour(frame[y][x])
			w.pixels[i] = rgb[0]
			w.pixels[i+1] = rgb[1]
			w.pixels[i+2] = rgb[2]
			w.pixels[i+3] = 0xFF
			i += 4
		}
	}

	if err := w.texture.Update(nil, w.pixels[:], ppu.ScreenWidth*4); err != nil {
		return fmt.Errorf("display: update texture: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("display: clear: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("display: copy: %w", err)
	}
	w.renderer.Present()
	return nil
}

// Close tears the window down.
func (w *Window) Close() {
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
	sdl.Quit()
}
