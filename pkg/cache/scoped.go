package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each project or tenant its
// own slice of a shared backend.
//
//	k := cache.NewScopedKeyer(nil, "project:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ImageKey(url string) string {
	return k.prefix + k.inner.ImageKey(url)
}

func (k *ScopedKeyer) ArtifactKey(projectHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(projectHash, opts)
}
