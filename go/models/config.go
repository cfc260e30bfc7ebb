package models

import (
	"io"
	"os"
	"path"
)

const (
	DefaultHeapBase = 0x10000000
	DefaultHeapSize = 16 << 20
	DefaultBufSize  = 1024
)

// Config carries the knobs shared by the kernel model, the runtime and the CLI.
type Config struct {
	Color    bool
	TraceSys bool
	Strsize  int
	Verbose  bool

	// Unbuffered makes every stream write go straight to the transport,
	// one syscall per byte for PutByte.
	Unbuffered bool
	BufSize    int

	HeapBase uint64
	HeapSize uint64

	// Output receives trace and diagnostic lines (stderr when nil).
	Output io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		Strsize:  30,
		BufSize:  DefaultBufSize,
		HeapBase: DefaultHeapBase,
		HeapSize: DefaultHeapSize,
	}
}

func (c *Config) Out() io.Writer {
	if c.Output == nil {
		return os.Stderr
	}
	return c.Output
}

// ResolvePath joins a guest path against the guest working directory and
// returns it relative to the file root, the form io/fs expects.
func (c *Config) ResolvePath(cwd, p string) string {
	if !path.IsAbs(p) {
		p = path.Join(cwd, p)
	}
	p = path.Clean("/" + p)
	if p == "/" {
		return "."
	}
	return p[1:]
}
