package syscalls

// StatRecord is the out-parameter of Stat: thirteen little-endian words.
type StatRecord struct {
	Dev     uint64 `struc:"uint64,little"`
	Ino     uint64 `struc:"uint64,little"`
	Mode    uint64 `struc:"uint64,little"`
	Nlink   uint64 `struc:"uint64,little"`
	Uid     uint64 `struc:"uint64,little"`
	Gid     uint64 `struc:"uint64,little"`
	Rdev    uint64 `struc:"uint64,little"`
	Size    uint64 `struc:"uint64,little"`
	Blksize uint64 `struc:"uint64,little"`
	Blocks  uint64 `struc:"uint64,little"`
	Atime   uint64 `struc:"uint64,little"`
	Mtime   uint64 `struc:"uint64,little"`
	Ctime   uint64 `struc:"uint64,little"`
}

// StatSize is the packed size of StatRecord.
const StatSize = 13 * 8

const (
	S_IFDIR = 0040000
	S_IFREG = 0100000
)
