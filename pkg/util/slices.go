package util

func InPlaceFilter[T any](s *[]T, p func(T) bool) {
	i := 0
	for _, e := range *s {
		if p(e) {
			(*s)[i] = e
			i++
		}
	}
	*s = (*s)[:i]
}

// Chunk splits s into consecutive slices of at most size elements.
func Chunk[T any](s []T, size int) [][]T {
	if size <= 0 {
		size = len(s)
	}

	var chunks [][]T
	for lower := 0; lower < len(s); lower += size {
		upper := min(lower+size, len(s))
		chunks = append(chunks, s[lower:upper])
	}

	return chunks
}
