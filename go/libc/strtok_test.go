package libc

import (
	"testing"
)

func tokens(t *Tokenizer, input []byte, delim string) []string {
	var out []string
	for tok := t.Next(input, delim); tok != nil; tok = t.Next(nil, delim) {
		out = append(out, string(tok))
	}
	return out
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		in    string
		delim string
		out   []string
	}{
		{"a,b,,c", ",", []string{"a", "b", "", "c"}},
		{"a b\tc", " \t", []string{"a", "b", "c"}},
		{"a,", ",", []string{"a", ""}},
		{"", ",", []string{""}},
		{"x,y\x00,z", ",", []string{"x", "y"}},
		{"abc", "", []string{"abc"}},
	}
	for _, test := range tests {
		var tok Tokenizer
		out := tokens(&tok, []byte(test.in), test.delim)
		if len(out) != len(test.out) {
			t.Errorf("%q: got %q, want %q", test.in, out, test.out)
			continue
		}
		for i := range out {
			if out[i] != test.out[i] {
				t.Errorf("%q: token %d = %q, want %q", test.in, i, out[i], test.out[i])
			}
		}
		if tok.Next(nil, test.delim) != nil {
			t.Errorf("%q: tokenizer did not stay exhausted", test.in)
		}
	}
}

func TestTokenizerInPlace(t *testing.T) {
	buf := []byte("k=v;x=y")
	var outer, inner Tokenizer
	pair := outer.Next(buf, ";")
	key := inner.Next(pair, "=")
	val := inner.Next(nil, "=")
	next := outer.Next(nil, ";")
	if string(key) != "k" || string(val) != "v" || string(next) != "x=y" {
		t.Fatalf("nested tokenizers: %q %q %q", key, val, next)
	}
	if string(buf) != "k\x00v\x00x=y" {
		t.Fatalf("delimiters not replaced: %q", buf)
	}
}

func TestTokenizerZeroValue(t *testing.T) {
	var tok Tokenizer
	if tok.Next(nil, ",") != nil {
		t.Fatal("zero Tokenizer returned a token")
	}
}
