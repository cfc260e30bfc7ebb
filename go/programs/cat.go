package programs

import (
	"io"

	"github.com/hobbyos/userrt/go/libc"
)

func catStream(lc *libc.Libc, s *libc.Stream) error {
	buf := make([]byte, 512)
	for {
		n, err := s.Read(buf)
		if n > 0 {
			if _, werr := lc.Stdout.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return lc.Stdout.Flush()
		} else if err != nil {
			return err
		}
	}
}

func cat(lc *libc.Libc, args []string) int {
	if len(args) < 2 {
		if err := catStream(lc, lc.Stdin); err != nil {
			lc.Fprintf(lc.Stderr, "cat: %s\n", err)
			return 1
		}
		return 0
	}
	status := 0
	for _, name := range args[1:] {
		f, err := lc.Fopen(name, "r")
		if err != nil {
			lc.Fprintf(lc.Stderr, "cat: %s: %s\n", name, libc.Strerror(2))
			status = 1
			continue
		}
		if err := catStream(lc, f); err != nil {
			lc.Fprintf(lc.Stderr, "cat: %s: %s\n", name, err)
			status = 1
		}
		lc.Fclose(f)
	}
	return status
}

func init() { Register("cat", "copy files or stdin to stdout", cat) }
