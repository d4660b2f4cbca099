package special

func simpleFunction() int {
	return 42
}

func complexFunction(n int) int {
	if n <= 1 {
		return n
	}

	result := 0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			result += i
		} else {
			result -= i
		}
		if i%3 == 0 {
			result *= 2
		} else {
			switch i {
			case 5:
				result += 5
			case 7:
				result += 7
			default:
				result++
			}
		}
	}
	return result
}
