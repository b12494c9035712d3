package recorder

import "math"

// NormalizeRating folds raw rating submissions onto the engine's 1..5
// scale and averages them. Each raw value is taken modulo 5, with an
// exact multiple of 5 counting as 5; the aggregate is the arithmetic
// mean rounded to the nearest integer. Negative submissions are
// skipped; 0 means nothing usable came in.
func NormalizeRating(raw []int) int {
	sum := 0
	count := 0
	for _, v := range raw {
		if v < 0 {
			continue
		}
		n := v % 5
		if n == 0 {
			n = 5
		}
		sum += n
		count++
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
