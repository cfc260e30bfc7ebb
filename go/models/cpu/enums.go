package cpu

// page protections, matching the mmap PROT_* bits
const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = PROT_READ | PROT_WRITE | PROT_EXEC
)

// Fault classifies a MemError.
type Fault int

const (
	FaultUnmapped Fault = iota
	FaultProt
)
