package hv

import (
	co "github.com/hobbyos/userrt/go/kernel/common"
	"github.com/hobbyos/userrt/go/syscalls"
)

func (k *Kernel) Getpid() uint64 {
	return k.pid
}

func (k *Kernel) Getppid() uint64 {
	return k.ppid
}

// Kill only reaches the calling process.
func (k *Kernel) Kill(pid uint64, sig uint64) uint64 {
	if pid != k.pid {
		return syscalls.Failure
	}
	k.signals = append(k.signals, sig)
	return 0
}

func (k *Kernel) Vfork() uint64 {
	return syscalls.Failure
}

func (k *Kernel) Execve(name co.Ptr, argv co.Ptr, envp co.Ptr) uint64 {
	return syscalls.Failure
}

func (k *Kernel) Exit(status int) uint64 {
	k.exited = true
	k.status = status
	return 0
}
