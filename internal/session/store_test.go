package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s, err := m.Create(ctx, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	s.MerchantToken = "tok"
	assert.NoError(t, m.Save(ctx, s))

	got, err := m.Get(ctx, s.ID)
	assert.NoError(t, err)
	assert.Equal(t, "tok", got.MerchantToken)

	// Get returns a copy; mutating it must not leak into the store.
	got.MerchantToken = "changed"
	again, err := m.Get(ctx, s.ID)
	assert.NoError(t, err)
	assert.Equal(t, "tok", again.MerchantToken)

	assert.NoError(t, m.Delete(ctx, s.ID))
	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s, err := m.Create(ctx, -time.Minute)
	assert.NoError(t, err)

	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
