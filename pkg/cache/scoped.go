package cache

// ScopedKeyer wraps a Keyer with a prefix so different sessions (or
// tenants) get separate cache namespaces without coordinating TTLs.
//
// Example usage:
//
//	// Session-scoped keys so one classroom's cloud never serves another's
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "session:"+sessionID+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AggregateKey generates a prefixed key for aggregation results.
func (k *ScopedKeyer) AggregateKey(submissionsHash string) string {
	return k.prefix + k.inner.AggregateKey(submissionsHash)
}

// LayoutKey generates a prefixed key for layout results.
func (k *ScopedKeyer) LayoutKey(aggregateHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(aggregateHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
