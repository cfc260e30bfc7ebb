package libc

import (
	"bytes"
)

// Tokenizer splits a caller-owned buffer in place.
type Tokenizer struct {
	rest   []byte
	active bool
}

// Next returns the next token. A non-nil input starts a new buffer, nil
// continues the current one. Each delimiter found is overwritten with NUL.
// Adjacent delimiters produce empty tokens. Input ends at its first NUL.
// Next returns nil once the buffer is exhausted.
func (t *Tokenizer) Next(input []byte, delim string) []byte {
	if input != nil {
		if i := bytes.IndexByte(input, 0); i >= 0 {
			input = input[:i]
		}
		t.rest, t.active = input, true
	} else if !t.active {
		return nil
	}
	for i, c := range t.rest {
		if c != 0 && bytes.IndexByte([]byte(delim), c) >= 0 {
			t.rest[i] = 0
			tok := t.rest[:i:i]
			t.rest = t.rest[i+1:]
			return tok
		}
	}
	tok := t.rest
	t.rest, t.active = nil, false
	return tok
}
