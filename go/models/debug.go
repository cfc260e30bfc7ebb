package models

import (
	"fmt"
	"strings"
)

func escapeByte(c byte) string {
	if c >= 0x20 && c <= 0x7e {
		return string(c)
	}
	return fmt.Sprintf("\\x%02x", c)
}

// Repr quotes p for trace output, escaping non-printable bytes as \xNN.
// When strsize > 0 and the escaped form is longer, whole characters are
// dropped from the end and "..." follows the closing quote.
func Repr(p []byte, strsize int) string {
	parts := make([]string, len(p))
	total := 0
	for i, c := range p {
		parts[i] = escapeByte(c)
		total += len(parts[i])
	}
	if strsize <= 0 || total <= strsize {
		return `"` + strings.Join(parts, "") + `"`
	}
	var b strings.Builder
	for _, s := range parts {
		if b.Len()+len(s) > strsize-3 {
			break
		}
		b.WriteString(s)
	}
	return `"` + b.String() + `"...`
}

// HexDump renders mem as lines of width bytes: the address, the bytes in
// groups of four and a printable column.
func HexDump(base uint64, mem []byte, width int) []string {
	if width <= 0 {
		width = 16
	}
	var out []string
	for off := 0; off < len(mem); off += width {
		end := off + width
		if end > len(mem) {
			end = len(mem)
		}
		row := mem[off:end]
		var b strings.Builder
		fmt.Fprintf(&b, "0x%08x:", base+uint64(off))
		for i := 0; i < width; i++ {
			if i%4 == 0 {
				b.WriteByte(' ')
			}
			if i < len(row) {
				fmt.Fprintf(&b, "%02x", row[i])
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("  |")
		for _, c := range row {
			if c >= 0x20 && c <= 0x7e {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('|')
		out = append(out, b.String())
	}
	return out
}
