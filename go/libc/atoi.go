package libc

// Atoi parses an optionally signed decimal prefix of s after leading spaces
// and tabs. Parsing stops at the first non-digit; no digits yields 0. The
// result wraps like a 32-bit C int.
func Atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	sign := int32(1)
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	var result int32
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		result = result*10 + int32(s[i]-'0')
	}
	return int(sign * result)
}
