package hv

import (
	"hash/fnv"
	"io/fs"
	"path"

	co "github.com/hobbyos/userrt/go/kernel/common"
	"github.com/hobbyos/userrt/go/syscalls"
)

const (
	ModeRead = iota
	ModeWrite
	ModeReadWrite
)

var openModes = map[string]int{
	"r":  ModeRead,
	"w":  ModeWrite,
	"rw": ModeReadWrite,
}

type file struct {
	Path string
	Mode int
	Data []byte
	Pos  int64
}

func (k *Kernel) resolve(p string) string {
	return k.Config.ResolvePath(k.cwd, p)
}

func (k *Kernel) file(h co.Fd) *file {
	i := int(h) - 1
	if i < 0 || i >= len(k.files) {
		return nil
	}
	return k.files[i]
}

// Fopen loads a whole file and answers a 1-based handle, or 0.
func (k *Kernel) Fopen(name string, mode string) uint64 {
	m, ok := openModes[mode]
	if !ok || k.FS == nil || name == "" {
		return 0
	}
	p := k.resolve(name)
	data, err := fs.ReadFile(k.FS, p)
	if err != nil {
		return 0
	}
	k.files = append(k.files, &file{Path: p, Mode: m, Data: data})
	return uint64(len(k.files))
}

// Fread copies at most size bytes from the current position.
func (k *Kernel) Fread(h co.Fd, buf co.Obuf, size co.Len) uint64 {
	f := k.file(h)
	if f == nil || f.Pos >= int64(len(f.Data)) {
		return 0
	}
	n := int64(size)
	if remain := int64(len(f.Data)) - f.Pos; n > remain || n < 0 {
		n = remain
	}
	if err := buf.Write(f.Data[f.Pos : f.Pos+n]); err != nil {
		return 0
	}
	f.Pos += n
	return uint64(n)
}

// Fseek answers 1 for an unknown handle or origin. Origin 2 counts back from
// the end of the file.
func (k *Kernel) Fseek(h co.Fd, off co.Off, origin int) uint64 {
	f := k.file(h)
	if f == nil {
		return 1
	}
	var pos int64
	switch origin {
	case 0:
		pos = int64(off)
	case 1:
		pos = f.Pos + int64(off)
	case 2:
		pos = int64(len(f.Data)) - int64(off)
	default:
		return 1
	}
	if pos < 0 {
		pos = 0
	}
	f.Pos = pos
	return 0
}

func (k *Kernel) Ftell(h co.Fd) uint64 {
	if f := k.file(h); f != nil {
		return uint64(f.Pos)
	}
	return 0
}

func (k *Kernel) Feof(h co.Fd) uint64 {
	f := k.file(h)
	if f == nil || f.Pos >= int64(len(f.Data)) {
		return 1
	}
	return 0
}

func (k *Kernel) Stat(name string, out co.Buf) uint64 {
	if k.FS == nil || name == "" {
		return syscalls.Failure
	}
	p := k.resolve(name)
	info, err := fs.Stat(k.FS, p)
	if err != nil {
		return syscalls.Failure
	}
	ino := fnv.New64a()
	ino.Write([]byte(p))
	rec := syscalls.StatRecord{
		Ino:     ino.Sum64(),
		Nlink:   1,
		Size:    uint64(info.Size()),
		Blksize: 512,
		Blocks:  (uint64(info.Size()) + 511) / 512,
		Mtime:   uint64(info.ModTime().Unix()),
	}
	rec.Atime, rec.Ctime = rec.Mtime, rec.Mtime
	if info.IsDir() {
		rec.Mode = syscalls.S_IFDIR | 0755
		rec.Nlink = 2
	} else {
		rec.Mode = syscalls.S_IFREG | uint64(info.Mode().Perm())
	}
	if err := out.Pack(&rec); err != nil {
		return syscalls.Failure
	}
	return 0
}

func (k *Kernel) Chdir(name string) uint64 {
	if name == "" {
		return syscalls.Failure
	}
	k.cwd = path.Join("/", k.resolve(name))
	return 0
}

// Getcwd copies as much of the working directory as fits and answers its
// full length.
func (k *Kernel) Getcwd(buf co.Obuf, size co.Len) uint64 {
	cwd := []byte(k.cwd)
	n := uint64(len(cwd))
	if uint64(size) < n {
		n = uint64(size)
	}
	if n > 0 {
		buf.Write(cwd[:n])
	}
	return uint64(len(cwd))
}

// Cwd is the working directory used to resolve relative paths.
func (k *Kernel) Cwd() string {
	return k.cwd
}
