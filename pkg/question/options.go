package question

// Option configures Parse and Resolve.
type Option func(*config)

type config struct {
	quirk func(Quirk)
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithQuirkHandler accepts patterns that only resolve through a known
// alternate prefix, and reports each one to fn. Without it such patterns
// fail with ErrPrefixVerify.
func WithQuirkHandler(fn func(Quirk)) Option {
	return func(c *config) {
		c.quirk = fn
	}
}
