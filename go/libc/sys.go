package libc

import (
	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/syscalls"
)

func (lc *Libc) Getpid() uint64 {
	ret, _ := lc.call(syscalls.Getpid)
	return ret
}

func (lc *Libc) Getppid() uint64 {
	ret, _ := lc.call(syscalls.Getppid)
	return ret
}

func (lc *Libc) DrawPixel(x, y int, color byte) error {
	_, err := lc.call(syscalls.DrawPixel, uint64(x), uint64(y), uint64(color))
	return err
}

// DrawFramebuffer presents a full screen stored at addr.
func (lc *Libc) DrawFramebuffer(addr uint64) error {
	_, err := lc.call(syscalls.PlotFramebuffer, addr)
	return err
}

func (lc *Libc) SwitchVGAMode(on bool) error {
	var arg uint64
	if on {
		arg = 1
	}
	_, err := lc.call(syscalls.SwitchVGAMode, arg)
	return err
}

// GetKeystate reports whether key was pressed since it was last queried.
func (lc *Libc) GetKeystate(key byte) bool {
	ret, _ := lc.call(syscalls.GetKeystate, uint64(key))
	return ret != 0
}

func (lc *Libc) GetTime() (sec, usec uint32, err error) {
	addr, err := lc.scratchBuf(8)
	if err != nil {
		return 0, 0, err
	}
	ret, err := lc.call(syscalls.GetTime, addr, addr+4)
	if err != nil {
		return 0, 0, err
	}
	if ret == 0 {
		return 0, 0, errors.Wrap(syscalls.ErrFailed, "get_time")
	}
	s, err := lc.Mem.ReadUint(addr, 4)
	if err != nil {
		return 0, 0, err
	}
	us, err := lc.Mem.ReadUint(addr+4, 4)
	if err != nil {
		return 0, 0, err
	}
	return uint32(s), uint32(us), nil
}

func (lc *Libc) Stat(path string) (*syscalls.StatRecord, error) {
	addr, err := lc.scratchBuf(uint64(len(path)) + 8 + syscalls.StatSize)
	if err != nil {
		return nil, err
	}
	if err := lc.Mem.WriteStrAt(addr, path); err != nil {
		return nil, err
	}
	out := (addr + uint64(len(path)) + 8) &^ 7
	if _, err := lc.call(syscalls.Stat, addr, out); err != nil {
		return nil, errors.Wrapf(err, "stat(%q)", path)
	}
	var rec syscalls.StatRecord
	if err := models.StrucAt(lc.Mem, out).Unpack(&rec); err != nil {
		return nil, errors.Wrap(err, "stat record")
	}
	return &rec, nil
}

func (lc *Libc) Chdir(path string) error {
	addrs, err := lc.cstrings(path)
	if err != nil {
		return err
	}
	_, err = lc.call(syscalls.Chdir, addrs[0])
	return errors.Wrapf(err, "chdir(%q)", path)
}

// Getcwd grows its buffer until the whole working directory fits.
func (lc *Libc) Getcwd() (string, error) {
	size := uint64(64)
	for {
		addr, err := lc.scratchBuf(size)
		if err != nil {
			return "", err
		}
		n, err := lc.call(syscalls.Getcwd, addr, size)
		if err != nil {
			return "", err
		}
		if n <= size {
			p, err := lc.Mem.MemRead(addr, n)
			return string(p), err
		}
		size = n
	}
}

func (lc *Libc) Kill(pid uint64, sig int) error {
	_, err := lc.call(syscalls.Kill, pid, uint64(sig))
	return errors.Wrapf(err, "kill(%d, %d)", pid, sig)
}

// Read is a raw read from fd into p.
func (lc *Libc) Read(fd uint64, p []byte) (int, error) {
	addr, err := lc.scratchBuf(uint64(len(p)))
	if err != nil {
		return 0, err
	}
	n, err := lc.call(syscalls.Read, fd, addr, uint64(len(p)))
	if err != nil {
		return 0, err
	}
	if n > uint64(len(p)) {
		n = uint64(len(p))
	}
	return int(n), lc.Mem.MemReadInto(p[:n], addr)
}

// Strerror returns the fixed message for errnum.
func Strerror(errnum int) string {
	return models.Strerror(errnum)
}
