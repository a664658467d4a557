package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func TestManager_StartCurrentEnd(t *testing.T) {
	m := NewManager(newMemStore(), time.Hour)
	ctx := context.Background()

	sid, err := m.Start(ctx, 12, "doctor")
	assert.NoError(t, err)
	assert.NotEmpty(t, sid)

	sess, err := m.Current(ctx, sid)
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, uint(12), sess.UserID)
	assert.Equal(t, "doctor", sess.Role)

	assert.NoError(t, m.End(ctx, sid))

	sess, err = m.Current(ctx, sid)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestManager_UnknownSessionID(t *testing.T) {
	m := NewManager(newMemStore(), time.Hour)

	sess, err := m.Current(context.Background(), "no-such-session")
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestManager_CorruptPayloadTreatedAsNoSession(t *testing.T) {
	store := newMemStore()
	m := NewManager(store, time.Hour)
	ctx := context.Background()

	sid, err := m.Start(ctx, 1, "admin")
	assert.NoError(t, err)
	store.data[sessionKeyPrefix+sid] = []byte("{not json")

	sess, err := m.Current(ctx, sid)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager(newMemStore(), time.Hour)
	ctx := context.Background()

	sidAdmin, err := m.Start(ctx, 1, "admin")
	assert.NoError(t, err)
	sidDoctor, err := m.Start(ctx, 2, "doctor")
	assert.NoError(t, err)
	assert.NotEqual(t, sidAdmin, sidDoctor)

	assert.NoError(t, m.End(ctx, sidAdmin))

	sess, err := m.Current(ctx, sidDoctor)
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, uint(2), sess.UserID)
}
