package programs

import (
	"encoding/binary"

	"github.com/hobbyos/userrt/go/libc"
)

const intSize = 8

func cmpLong(a, b []byte) int {
	x, y := int64(binary.LittleEndian.Uint64(a)), int64(binary.LittleEndian.Uint64(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// sortMain sorts integers from its arguments, or from stdin when there are
// none. -r reverses the output and -n KEY reports whether KEY is present.
func sortMain(lc *libc.Libc, args []string) int {
	g := libc.NewGetopt(lc.Stderr)
	reverse := false
	var key string
	for {
		opt := g.Next(args, "rn:")
		if opt == libc.OptEnd {
			break
		}
		switch opt {
		case 'r':
			reverse = true
		case 'n':
			key = g.Arg
		default:
			lc.Fprintf(lc.Stderr, "usage: sort [-r] [-n key] [ints...]\n")
			return 2
		}
	}

	var words []string
	if g.Ind < len(args) {
		words = args[g.Ind:]
	} else {
		data, err := libc.ReadAll(lc.Stdin)
		if err != nil {
			lc.Fprintf(lc.Stderr, "sort: %s\n", err)
			return 1
		}
		var tok libc.Tokenizer
		for w := tok.Next(data, " \t\n"); w != nil; w = tok.Next(nil, " \t\n") {
			if len(w) > 0 {
				words = append(words, string(w))
			}
		}
	}

	base := make([]byte, len(words)*intSize)
	for i, w := range words {
		binary.LittleEndian.PutUint64(base[i*intSize:], uint64(int64(libc.Atoi(w))))
	}
	libc.Qsort(base, len(words), intSize, cmpLong)

	for i := range words {
		j := i
		if reverse {
			j = len(words) - 1 - i
		}
		lc.Printf("%ld\n", int64(binary.LittleEndian.Uint64(base[j*intSize:])))
	}

	if key != "" {
		k := make([]byte, intSize)
		binary.LittleEndian.PutUint64(k, uint64(int64(libc.Atoi(key))))
		if libc.Bsearch(k, base, len(words), intSize, cmpLong) != nil {
			lc.Printf("found %s\n", key)
		} else {
			lc.Printf("%s not found\n", key)
			return 1
		}
	}
	return 0
}

func init() { Register("sort", "sort integers (-r reverse, -n key search)", sortMain) }
