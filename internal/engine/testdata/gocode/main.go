package gocode

func BaseFunction() int {
	return 1
}

func SimpleCondition(n int) int {
	if n > 0 {
		return n
	}
	return -n
}
