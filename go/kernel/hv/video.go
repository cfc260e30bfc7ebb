package hv

import (
	"fmt"

	co "github.com/hobbyos/userrt/go/kernel/common"
	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/frames"
)

const fbSize = frames.Width * frames.Height

// DrawPixel sets one byte of the framebuffer and flips. Off-screen pixels
// are ignored.
func (k *Kernel) DrawPixel(x, y, color uint64) uint64 {
	if x < frames.Width && y < frames.Height {
		k.fb[y*frames.Width+x] = byte(color)
	}
	k.flip()
	return 0
}

// PlotFramebuffer replaces the whole framebuffer from guest memory.
func (k *Kernel) PlotFramebuffer(buf co.Buf) uint64 {
	if err := k.Mem.MemReadInto(k.fb[:], buf.Addr); err != nil {
		return 0
	}
	k.flip()
	return 0
}

// SwitchVgaMode toggles graphics mode, clearing the screen when turned on.
func (k *Kernel) SwitchVgaMode(on uint64) uint64 {
	k.vga = on != 0
	if k.vga {
		k.fb = [fbSize]byte{}
	}
	return 0
}

// GetKeystate reports whether key was pressed since the last query.
func (k *Kernel) GetKeystate(key uint64) uint64 {
	if key >= uint64(len(k.keys)) {
		return 0
	}
	pressed := k.keys[key]
	k.keys[key] = false
	if pressed {
		return 1
	}
	return 0
}

// PressKey marks key as pressed until the next get_keystate for it.
func (k *Kernel) PressKey(key byte) {
	k.keys[key] = true
}

func (k *Kernel) flip() {
	k.flips++
	if k.Frames == nil {
		return
	}
	if _, err := k.Frames.WriteFrame(k.fb[:]); err != nil && k.Config.Verbose {
		fmt.Fprintln(k.Config.Out(), models.ColorErr("frame capture: "+err.Error(), k.Config.Color))
	}
}

// Framebuffer returns the current screen contents.
func (k *Kernel) Framebuffer() []byte {
	return k.fb[:]
}

func (k *Kernel) VgaMode() bool {
	return k.vga
}

// Flips counts presented frames.
func (k *Kernel) Flips() int {
	return k.flips
}
