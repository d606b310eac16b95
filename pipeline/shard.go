package pipeline

// Shard splits items into n disjoint, order-preserving shards by
// round-robin index: shard i holds items i, i+n, i+2n and so on. Shards may
// be empty when n exceeds len(items). It returns nil when n < 1.
func Shard[T any](items []T, n int) [][]T {
	if n < 1 {
		return nil
	}
	shards := make([][]T, n)
	for i := range shards {
		shards[i] = make([]T, 0, (len(items)+n-1-i)/n)
	}
	for i, item := range items {
		shards[i%n] = append(shards[i%n], item)
	}
	return shards
}
