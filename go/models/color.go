package models

import (
	"github.com/mgutz/ansi"
)

var (
	chName = ansi.ColorCode("cyan+b")
	chRet  = ansi.ColorCode("green")
	chErr  = ansi.ColorCode("red+b")
	chDim  = ansi.ColorCode("black+h")
)

func colorize(s, code string, color bool) string {
	if !color {
		return s
	}
	return code + s + ansi.Reset
}

func ColorName(s string, color bool) string { return colorize(s, chName, color) }
func ColorRet(s string, color bool) string  { return colorize(s, chRet, color) }
func ColorErr(s string, color bool) string  { return colorize(s, chErr, color) }
func ColorDim(s string, color bool) string  { return colorize(s, chDim, color) }
