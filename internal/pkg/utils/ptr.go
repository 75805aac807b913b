package utils

// Ptr returns a pointer to v, for filling nullable record fields.
func Ptr[T any](v T) *T {
	return &v
}
