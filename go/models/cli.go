package models

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagWidth is the line width PrintFlags wraps usage text to.
const FlagWidth = 80

func flagDefault(f *flag.Flag) string {
	if f.DefValue == "" || f.DefValue == "[]" {
		return ""
	}
	return "(" + f.DefValue + ")"
}

// wrapUsage breaks s at newlines, then greedily at spaces so each line fits
// width. A single word longer than width gets a line of its own.
func wrapUsage(s string, width int) []string {
	if width < 20 {
		width = 20
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			if line != "" && len(line)+1+len(word) > width {
				out = append(out, line)
				line = ""
			}
			if line != "" {
				line += " "
			}
			line += word
		}
		out = append(out, line)
	}
	return out
}

// PrintFlags writes one row per flag: the name, its default in parens and
// the usage text, with continuation lines aligned under the usage column.
func PrintFlags(w io.Writer, flags []*flag.Flag) {
	wname, wdef := 0, 0
	for _, f := range flags {
		if len(f.Name) > wname {
			wname = len(f.Name)
		}
		if d := flagDefault(f); len(d) > wdef {
			wdef = len(d)
		}
	}
	indent := strings.Repeat(" ", wname+wdef+5)
	for _, f := range flags {
		lines := wrapUsage(f.Usage, FlagWidth-len(indent))
		fmt.Fprintf(w, "  -%-*s %-*s %s\n", wname, f.Name, wdef, flagDefault(f), lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintf(w, "%s%s\n", indent, l)
		}
	}
}
