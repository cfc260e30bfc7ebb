package run

import (
	"fmt"
	"os"

	"github.com/hobbyos/userrt/go/cmd"
)

func Main(args []string) int {
	c := cmd.NewRuntimeCmd()
	defaults, err := cmd.DefaultFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
	}
	argv := append([]string{args[0]}, defaults...)
	return c.Run(append(argv, args[1:]...))
}

func init() { cmd.Register("run", "run a built-in program", Main) }
