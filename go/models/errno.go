package models

// Errno is a kernel error number. Only the table below is known by name.
type Errno int

var errnoNames = []string{
	"Success",
	"Operation not permitted",
	"No such file or directory",
	"No such process",
	"Interrupted system call",
	"I/O error",
	"No such device or address",
	"Argument list too long",
	"Exec format error",
	"Bad file number",
	"No child processes",
	"Try again",
	"Out of memory",
	"Permission denied",
}

func (e Errno) Error() string { return Strerror(int(e)) }

// Strerror maps an error number to its fixed message.
func Strerror(errnum int) string {
	if errnum >= 0 && errnum < len(errnoNames) {
		return errnoNames[errnum]
	}
	return "Unknown error"
}
