package level1

func NestedIf(a, b int) int {
	if a > 0 {
		if b > 0 {
			return a + b
		}
		return a
	}
	return 0
}

func LoopWithCondition(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			sum += i
		} else if i%3 == 0 {
			sum -= i
		}
	}
	return sum
}
