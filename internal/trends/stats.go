package trends

import "math"

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// populationStdDev divides by n.
func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(sumSquares(values, mean) / float64(len(values)))
}

// sampleStdDev divides by n-1.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return math.Sqrt(sumSquares(values, mean) / float64(len(values)-1))
}

func sumSquares(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return sum
}

// linearFit regresses values against their 0-based index and returns the
// slope and coefficient of determination.
func linearFit(values []float64) (slope, rSquared float64) {
	n := len(values)
	if n < 2 {
		return 0, 0
	}
	meanX := float64(n-1) / 2
	meanY := mean(values)

	num, den := 0.0, 0.0
	for i, v := range values {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, 0
	}
	slope = num / den

	ssTot := sumSquares(values, meanY)
	if ssTot == 0 {
		return slope, 0
	}
	ssRes := 0.0
	for i, v := range values {
		predicted := meanY + slope*(float64(i)-meanX)
		ssRes += (v - predicted) * (v - predicted)
	}
	return slope, 1 - ssRes/ssTot
}

// pearson uses population deviations so that r stays within [-1,1] and is
// symmetric in its arguments. Zero variance yields 0.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	sx, sy := populationStdDev(xs, mx), populationStdDev(ys, my)
	if sx == 0 || sy == 0 {
		return 0
	}
	num := 0.0
	for i := range xs {
		num += (xs[i] - mx) * (ys[i] - my)
	}
	r := num / (float64(n) * (sx * sy))
	if r > 1 {
		return 1
	}
	if r < -1 {
		return -1
	}
	return r
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
