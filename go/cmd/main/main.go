package main

import (
	"github.com/hobbyos/userrt/go/cmd"

	_ "github.com/hobbyos/userrt/go/cmd/frames"
	_ "github.com/hobbyos/userrt/go/cmd/run"
)

func main() { cmd.Main() }
