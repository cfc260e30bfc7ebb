package frames

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hobbyos/userrt/go/cmd"
	"github.com/hobbyos/userrt/go/models"
	"github.com/hobbyos/userrt/go/models/frames"
)

const dumpWidth = 32

// Dump prints the header of a frame capture and one summary line per frame.
// With hex set, every line of a frame holding a nonzero byte is hexdumped.
func Dump(w io.Writer, r io.Reader, hex bool) error {
	fr, err := frames.NewReader(r)
	if err != nil {
		return err
	}
	h := fr.Header
	fmt.Fprintf(w, "%s v%d %dx%d\n", h.Magic, h.Version, h.Width, h.Height)
	var prev []byte
	count := 0
	for {
		frame, err := fr.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return errors.Wrap(err, "error reading next frame")
		}
		count++
		lit := 0
		for _, b := range frame.Data {
			if b != 0 {
				lit++
			}
		}
		changed := len(frame.Data)
		if prev != nil && len(prev) == len(frame.Data) {
			changed = 0
			for i := range prev {
				if prev[i] != frame.Data[i] {
					changed++
				}
			}
		}
		fmt.Fprintf(w, "frame %d: %d bytes, %d lit, %d changed\n", frame.Seq, len(frame.Data), lit, changed)
		if hex {
			for off := 0; off < len(frame.Data); off += dumpWidth {
				end := off + dumpWidth
				if end > len(frame.Data) {
					end = len(frame.Data)
				}
				chunk := frame.Data[off:end]
				if bytes.Count(chunk, []byte{0}) == len(chunk) {
					continue
				}
				for _, line := range models.HexDump(uint64(off), chunk, dumpWidth) {
					fmt.Fprintln(w, line)
				}
			}
		}
		prev = frame.Data
	}
	fmt.Fprintf(w, "%d frames\n", count)
	return nil
}

func Main(args []string) int {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	hex := fs.Bool("hex", false, "hexdump the nonzero parts of each frame")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-hex] <file>\n", args[0])
		fs.PrintDefaults()
	}
	fs.Parse(args[1:])
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()
	if err := Dump(os.Stdout, f, *hex); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func init() { cmd.Register("frames", "summarize a frame capture file", Main) }
