package render

import "sort"

// topK sorts items by less and splits them into the first k and the
// remainder. The remainder is what callers summarize into a rollup line so
// elided entries keep contributing to totals. The input slice is not
// modified.
func topK[T any](items []T, k int, less func(a, b T) bool) (head, rest []T) {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if k < 0 {
		k = 0
	}
	if k >= len(sorted) {
		return sorted, nil
	}
	return sorted[:k], sorted[k:]
}
