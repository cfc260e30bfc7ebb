package frames

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hobbyos/userrt/go/models/frames"
)

func capture(t *testing.T, fbs ...[]byte) *bytes.Buffer {
	var buf bytes.Buffer
	w, err := frames.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for _, fb := range fbs {
		if _, err := w.WriteFrame(fb); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestDump(t *testing.T) {
	a := make([]byte, frames.Width*frames.Height)
	b := make([]byte, len(a))
	b[frames.Width+1] = 'A'
	b[frames.Width+2] = 'B'

	var out bytes.Buffer
	if err := Dump(&out, capture(t, a, b), false); err != nil {
		t.Fatal(err)
	}
	want := "URFB v1 320x200\n" +
		"frame 0: 64000 bytes, 0 lit, 64000 changed\n" +
		"frame 1: 64000 bytes, 2 lit, 2 changed\n" +
		"2 frames\n"
	if out.String() != want {
		t.Fatalf("Dump = %q", out.String())
	}

	out.Reset()
	if err := Dump(&out, capture(t, b), true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	// header, summary, one hexdump line for the only lit row, total
	if len(lines) != 4 {
		t.Fatalf("hex dump lines:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[2], "0x00000140: 00414200") || !strings.HasSuffix(lines[2], "|.AB.............................|") {
		t.Fatalf("hex line = %q", lines[2])
	}
}

func TestDumpBadFile(t *testing.T) {
	var out bytes.Buffer
	if err := Dump(&out, strings.NewReader("nope, not a capture"), false); err == nil {
		t.Fatal("bad magic accepted")
	}
}
