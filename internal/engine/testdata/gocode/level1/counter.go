package level1

type Counter struct {
	total int
}

func (c *Counter) Add(by int) {
	if by > 0 {
		c.total += by
	}
}
