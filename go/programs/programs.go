// Package programs holds the hosted programs the CLI can run.
package programs

import (
	"sort"

	"github.com/hobbyos/userrt/go/crt"
)

type Program struct {
	Name, Desc string
	Main       crt.Main
}

var programs = make(map[string]*Program)

func Register(name, desc string, main crt.Main) {
	programs[name] = &Program{name, desc, main}
}

func Lookup(name string) *Program {
	return programs[name]
}

// List returns every program sorted by name.
func List() []*Program {
	out := make([]*Program, 0, len(programs))
	for _, p := range programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
