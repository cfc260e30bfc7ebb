package libc

import (
	"fmt"
	"io"
	"strings"
)

const (
	OptEnd     = -1
	OptUnknown = '?'
	OptMissing = ':'
)

// Getopt parses short options. The zero value is not ready; use NewGetopt
// or call Reset.
type Getopt struct {
	// Ind is the index of the next argument to examine.
	Ind int
	// Arg holds the value of the last option that takes one.
	Arg string
	// Opt holds the last option character examined.
	Opt byte
	// Err receives diagnostics when set.
	Err io.Writer

	pos int
}

func NewGetopt(errw io.Writer) *Getopt {
	g := &Getopt{Err: errw}
	g.Reset()
	return g
}

func (g *Getopt) Reset() {
	g.Ind, g.pos = 1, 1
	g.Arg = ""
}

func (g *Getopt) warn(format string, args ...interface{}) {
	if g.Err != nil {
		fmt.Fprintf(g.Err, format, args...)
	}
}

func (g *Getopt) advance(arg string) {
	g.pos++
	if g.pos >= len(arg) {
		g.Ind++
		g.pos = 1
	}
}

// Next returns the next option character from args, OptEnd when options are
// exhausted, OptUnknown for a character not in optstring, or OptMissing when
// an option's required value is absent. A "--" argument is consumed and ends
// parsing. "-" alone and non-option arguments end parsing without being
// consumed.
func (g *Getopt) Next(args []string, optstring string) int {
	if g.Ind < 1 || g.pos < 1 {
		g.Reset()
	}
	if g.Ind >= len(args) {
		return OptEnd
	}
	arg := args[g.Ind]
	if len(arg) < 2 || arg[0] != '-' {
		return OptEnd
	}
	if g.pos == 1 && arg[1] == '-' {
		g.Ind++
		return OptEnd
	}
	if g.pos >= len(arg) {
		g.Ind++
		g.pos = 1
		return g.Next(args, optstring)
	}
	opt := arg[g.pos]
	g.Opt = opt
	i := strings.LastIndexByte(optstring, opt)
	if opt == ':' || i < 0 {
		g.warn("Unknown option: -%c\n", opt)
		g.advance(arg)
		return OptUnknown
	}
	if i+1 < len(optstring) && optstring[i+1] == ':' {
		if g.pos+1 < len(arg) {
			g.Arg = arg[g.pos+1:]
			g.Ind++
		} else if g.Ind+1 < len(args) {
			g.Arg = args[g.Ind+1]
			g.Ind += 2
		} else {
			g.warn("Option -%c requires an argument\n", opt)
			g.Ind++
			g.pos = 1
			return OptMissing
		}
		g.pos = 1
	} else {
		g.Arg = ""
		g.advance(arg)
	}
	return int(opt)
}
