// Package kvtest provides kv.Store doubles for tests.
package kvtest

import (
	"context"
	"errors"
	"sync"

	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// ErrInjected is returned by FlakyStore when a failure is armed.
var ErrInjected = errors.New("injected kv failure")

// FlakyStore wraps an in-memory store and fails reads or writes on demand.
type FlakyStore struct {
	*kv.Memory

	mu      sync.Mutex
	failGet bool
	failSet bool
	sets    int
}

func NewFlakyStore() *FlakyStore {
	return &FlakyStore{Memory: kv.NewMemory()}
}

// FailWrites makes every subsequent Set and Remove return ErrInjected.
func (s *FlakyStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = fail
}

// FailReads makes every subsequent Get return ErrInjected.
func (s *FlakyStore) FailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGet = fail
}

// Writes reports how many Set calls succeeded.
func (s *FlakyStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

func (s *FlakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return nil, false, ErrInjected
	}
	return s.Memory.Get(ctx, key)
}

func (s *FlakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return ErrInjected
	}
	s.sets++
	return s.Memory.Set(ctx, key, value)
}

func (s *FlakyStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return s.Memory.Remove(ctx, key)
}

var _ kv.Store = (*FlakyStore)(nil)
