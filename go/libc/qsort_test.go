package libc

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"sort"
	"testing"
)

func packInts(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func unpackInts(p []byte) []int32 {
	out := make([]int32, len(p)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(p[i*4:]))
	}
	return out
}

func cmpInt(a, b []byte) int {
	x, y := int32(binary.LittleEndian.Uint32(a)), int32(binary.LittleEndian.Uint32(b))
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func TestQsort(t *testing.T) {
	tests := [][]int32{
		{},
		{1},
		{2, 1},
		{5, -3, 9, 0, 5, 1, -3, 7},
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
	}
	for _, test := range tests {
		base := packInts(test...)
		want := append([]int32{}, test...)
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		Qsort(base, len(test), 4, cmpInt)
		if out := unpackInts(base); !reflect.DeepEqual(out, want) {
			t.Fatalf("Qsort(%v) = %v, want %v", test, out, want)
		}
	}
}

func TestQsortWorstCase(t *testing.T) {
	const n = 50
	vals := make([]int32, n)
	for i := range vals {
		vals[i] = int32(i)
	}
	base := packInts(vals...)
	calls := 0
	Qsort(base, n, 4, func(a, b []byte) int {
		calls++
		return cmpInt(a, b)
	})
	if calls != n*(n-1)/2 {
		t.Fatalf("sorted input took %d comparisons", calls)
	}
}

func TestQsortStrings(t *testing.T) {
	base := []byte("pearfigsapplkiwi")
	Qsort(base, 4, 4, func(a, b []byte) int { return bytes.Compare(a, b) })
	if string(base) != "applfigskiwipear" {
		t.Fatalf("Qsort strings = %q", base)
	}
}

func TestBsearch(t *testing.T) {
	base := packInts(-5, 0, 3, 8, 13, 21)
	for i, v := range []int32{-5, 0, 3, 8, 13, 21} {
		got := Bsearch(packInts(v), base, 6, 4, cmpInt)
		if got == nil || &got[0] != &base[i*4] {
			t.Fatalf("Bsearch(%d) did not return element %d", v, i)
		}
	}
	for _, v := range []int32{-6, 1, 22} {
		if Bsearch(packInts(v), base, 6, 4, cmpInt) != nil {
			t.Fatalf("Bsearch(%d) found a missing key", v)
		}
	}
	if Bsearch(packInts(1), nil, 0, 4, cmpInt) != nil {
		t.Fatal("Bsearch of empty array")
	}
}
