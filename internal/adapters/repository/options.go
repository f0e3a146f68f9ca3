package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDGenerator overrides session ID minting, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(m *MemoryStore) {
		if fn != nil {
			m.newID = fn
		}
	}
}
