package models

// Ptr returns a pointer to v. Handy for optional fields in fixtures and decoders.
func Ptr[T any](v T) *T {
	return &v
}
