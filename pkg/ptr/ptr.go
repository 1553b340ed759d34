package ptr

// New returns a pointer to v.
func New[T any](v T) *T { return &v }

// ValueOr returns *p, or fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// NilIfZero returns nil for the zero value of T and a pointer to v otherwise.
func NilIfZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
