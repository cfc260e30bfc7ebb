package libc

// Qsort sorts num elements of size bytes in place. It partitions Lomuto-style
// around the last element and recurses on both sides, so it is not stable and
// already sorted input costs n*(n-1)/2 comparisons.
func Qsort(base []byte, num, size int, cmp func(a, b []byte) int) {
	if num < 2 || size <= 0 {
		return
	}
	tmp := make([]byte, size)
	qsort(base[:num*size], num, size, cmp, tmp)
}

func qsort(base []byte, num, size int, cmp func(a, b []byte) int, tmp []byte) {
	if num < 2 {
		return
	}
	elem := func(i int) []byte { return base[i*size : (i+1)*size] }
	swap := func(i, j int) {
		copy(tmp, elem(i))
		copy(elem(i), elem(j))
		copy(elem(j), tmp)
	}
	pivot := elem(num - 1)
	i := 0
	for j := 0; j < num-1; j++ {
		if cmp(elem(j), pivot) < 0 {
			if i != j {
				swap(i, j)
			}
			i++
		}
	}
	if i != num-1 {
		swap(i, num-1)
	}
	qsort(base[:i*size], i, size, cmp, tmp)
	qsort(base[(i+1)*size:], num-i-1, size, cmp, tmp)
}

// Bsearch finds key in a sorted array by bisection and returns the matching
// element, aliasing base, or nil.
func Bsearch(key, base []byte, num, size int, cmp func(key, elem []byte) int) []byte {
	lo, hi := 0, num-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		elem := base[mid*size : (mid+1)*size]
		c := cmp(key, elem)
		if c == 0 {
			return elem
		} else if c < 0 {
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return nil
}
