package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// JSONStore serializes values to JSON on top of a Store.
type JSONStore struct {
	store  Store
	logger *zap.Logger
}

// NewJSONStore wraps store.
func NewJSONStore(store Store, logger *zap.Logger) *JSONStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONStore{store: store, logger: logger}
}

// Read decodes the value under key into dst. It reports false when the key is absent or
// holds something that does not decode; dst is left untouched in that case.
func (s *JSONStore) Read(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("read %q: %w: %w", key, ErrStorageFailure, err)
	}
	if !ok {
		return false, nil
	}
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("read %q: destination must be a non-nil pointer, got %T", key, dst)
	}
	// json.Unmarshal fills dst partially before reporting a type mismatch, so decode aside.
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		s.logger.Warn("discarding unparsable stored value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

// Write encodes v and stores it under key. Nothing is written when encoding fails.
func (s *JSONStore) Write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("storage serialization failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encode %q: %w: %w: %w", key, ErrStorageFailure, ErrWriteFailed, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		s.logger.Warn("storage write failed", zap.String("key", key), zap.Int("bytes", len(raw)), zap.Error(err))
		return fmt.Errorf("write %q: %w: %w: %w", key, ErrStorageFailure, ErrWriteFailed, err)
	}
	return nil
}

// Remove deletes key.
func (s *JSONStore) Remove(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("storage remove failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("remove %q: %w: %w", key, ErrStorageFailure, err)
	}
	return nil
}
