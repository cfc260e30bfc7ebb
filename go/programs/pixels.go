package programs

import (
	"github.com/hobbyos/userrt/go/libc"
	"github.com/hobbyos/userrt/go/models/frames"
)

// pixels draws a diagonal pixel by pixel, then presents a gradient frame
// built in guest memory. Pressing q before the gradient skips it.
func pixels(lc *libc.Libc, args []string) int {
	if err := lc.SwitchVGAMode(true); err != nil {
		lc.Fprintf(lc.Stderr, "pixels: %s\n", err)
		return 1
	}
	for i := 0; i < 16; i++ {
		lc.DrawPixel(i, i, byte(i))
	}
	if lc.GetKeystate('q') {
		lc.SwitchVGAMode(false)
		lc.Printf("quit\n")
		return 0
	}
	fb, err := lc.Alloc(frames.Width * frames.Height)
	if err != nil {
		lc.Fprintf(lc.Stderr, "pixels: %s\n", err)
		return 1
	}
	defer fb.Release()
	row := make([]byte, frames.Width)
	for x := range row {
		row[x] = byte(x * 256 / frames.Width)
	}
	for y := 0; y < frames.Height; y++ {
		lc.Mem.MemWrite(fb.Addr+uint64(y*frames.Width), row)
	}
	lc.DrawFramebuffer(fb.Addr)
	lc.SwitchVGAMode(false)
	lc.Printf("drew %d pixels and %d frame\n", 16, 1)
	return 0
}

func init() { Register("pixels", "draw to the framebuffer", pixels) }
