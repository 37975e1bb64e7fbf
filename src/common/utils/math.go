package utils

// Min returns the smaller of two ints.
func Min(x, y int) int {
	if x > y {
		return y
	}
	return x
}
