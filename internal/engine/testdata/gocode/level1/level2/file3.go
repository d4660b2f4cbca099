package level2

func NestedLoopsWithConditions(n int) int {
	result := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i > j {
				if i%2 == 0 {
					result += i * j
				}
			}
		}
	}
	return result
}

func SwitchWithLoops(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		switch i % 3 {
		case 0:
			if i > 5 {
				sum += i
			}
		case 1:
			if i < 10 {
				sum -= i
			}
		default:
			sum += 2
		}
	}
	return sum
}
