package programs

import (
	"io"

	"github.com/hobbyos/userrt/go/libc"
)

// tok prints each delimited field of each stdin line. -d sets the delimiters.
func tok(lc *libc.Libc, args []string) int {
	g := libc.NewGetopt(lc.Stderr)
	delim := " \t"
	for opt := g.Next(args, "d:"); opt != libc.OptEnd; opt = g.Next(args, "d:") {
		if opt != 'd' {
			return 2
		}
		delim = g.Arg
	}
	lineno := 0
	for {
		line, err := lc.Stdin.Getline()
		if err == io.EOF {
			return 0
		} else if err != nil {
			lc.Fprintf(lc.Stderr, "tok: %s\n", err)
			return 1
		}
		lineno++
		if line[len(line)-1] == '\n' {
			line = line[:len(line)-1]
		}
		var t libc.Tokenizer
		field := 0
		for w := t.Next([]byte(line), delim); w != nil; w = t.Next(nil, delim) {
			field++
			lc.Printf("%d.%d [%s]\n", lineno, field, w)
		}
	}
}

func init() { Register("tok", "split stdin lines into fields", tok) }
