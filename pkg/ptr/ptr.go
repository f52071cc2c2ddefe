package ptr

// New returns a pointer to a copy of v, for filling optional fields from values.
func New[T any](v T) *T { return &v }
