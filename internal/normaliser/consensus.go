package normaliser

// MostFrequent returns the most frequent value in values.
// Frequency ties are broken by first appearance in input order, which
// keeps the result deterministic across runs. The second return is
// false when values is empty.
func MostFrequent(values []string) (string, bool) {
	value, _, ok := MostFrequentWithRatio(values)
	return value, ok
}

// MostFrequentWithRatio returns the most frequent value together with
// its share of the input (count / len(values)). Ties break by first
// appearance in input order.
func MostFrequentWithRatio(values []string) (string, float64, bool) {
	if len(values) == 0 {
		return "", 0, false
	}

	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}

	return best, float64(counts[best]) / float64(len(values)), true
}
