package persistence

import "context"

// NamespacedStore prefixes every key with "<namespace>:".
type NamespacedStore struct {
	inner  Store
	prefix string
}

// WithNamespace wraps inner. An empty namespace returns inner unchanged.
func WithNamespace(inner Store, namespace string) Store {
	if namespace == "" {
		return inner
	}
	return &NamespacedStore{inner: inner, prefix: namespace + ":"}
}

func (n *NamespacedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *NamespacedStore) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *NamespacedStore) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *NamespacedStore) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}
