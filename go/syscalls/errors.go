package syscalls

import (
	"github.com/pkg/errors"
)

var (
	// ErrDenied means the kernel refused a request by answering 0.
	ErrDenied = errors.New("transport denied")
	// ErrShortWrite means fewer bytes were accepted than requested.
	ErrShortWrite = errors.New("short write")
	// ErrUnsupported marks operations the kernel offers no service for.
	ErrUnsupported = errors.New("unsupported")
	ErrUndefined   = errors.New("undefined syscall")
	ErrFailed      = errors.New("syscall failed")
)
