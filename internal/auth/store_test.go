package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/storage"
)

func setup(t *testing.T) (*Store, *storage.MemoryStore, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	mem := storage.NewMemoryStore()
	return NewStore(mem, logger), mem, hook
}

type brokenStorage struct{}

func (brokenStorage) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("permission denied")
}
func (brokenStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("permission denied")
}

var alice = User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: RoleUser}

func TestSetAuthThenClearAuth(t *testing.T) {
	s, _, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, s.SetAuth(ctx, alice, "tok"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok", s.Token())
	require.NotNil(t, s.Session().User)
	assert.Equal(t, alice, *s.Session().User)

	require.NoError(t, s.ClearAuth(ctx))
	sess := s.Session()
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
	assert.Empty(t, sess.Token)
}

func TestSetAuth_Persists(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.SetAuth(ctx, alice, "tok"))

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"user":{"id":1,"name":"Alice","email":"alice@example.com","role":"USER","createdAt":"0001-01-01T00:00:00Z"},"token":"tok","isAuthenticated":true},"version":0}`, string(raw))

	require.NoError(t, s.ClearAuth(ctx))
	raw, err = mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"user":null,"token":"","isAuthenticated":false},"version":0}`, string(raw))
}

func TestUseToken_LeavesSessionUnauthenticated(t *testing.T) {
	s, _, _ := setup(t)
	s.UseToken("bare")

	assert.Equal(t, "bare", s.Token())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.Session().User)
}

func TestUseToken_DoesNotOverwriteStoredSession(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, s.SetAuth(ctx, alice, "tok"))

	s.UseToken("override")
	assert.Equal(t, "override", s.Token())

	logger, _ := logtest.NewNullLogger()
	next := NewStore(mem, logger)
	next.Initialize(ctx)
	assert.True(t, next.IsAuthenticated())
	assert.Equal(t, "tok", next.Token())
}

func TestInitialize_AdoptsCompleteRecord(t *testing.T) {
	writer, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, writer.SetAuth(ctx, alice, "tok"))

	logger, _ := logtest.NewNullLogger()
	reader := NewStore(mem, logger)
	assert.False(t, reader.IsAuthenticated())

	reader.Initialize(ctx)
	assert.True(t, reader.IsAuthenticated())
	assert.Equal(t, "tok", reader.Token())
	assert.Equal(t, alice, *reader.Session().User)
}

func TestInitialize_KeepsStateOnUnusableRecords(t *testing.T) {
	ctx := context.Background()

	tests := map[string]string{
		"no user":        `{"state":{"user":null,"token":"tok","isAuthenticated":true},"version":0}`,
		"no token":       `{"state":{"user":{"id":9,"role":"USER"},"token":"","isAuthenticated":true},"version":0}`,
		"malformed json": `{"state":{"user":`,
		"future version": `{"state":{"user":{"id":9},"token":"tok"},"version":2}`,
	}

	for name, stored := range tests {
		t.Run(name, func(t *testing.T) {
			s, mem, _ := setup(t)
			require.NoError(t, s.SetAuth(ctx, alice, "current"))
			require.NoError(t, mem.Set(ctx, StorageKey, []byte(stored)))

			s.Initialize(ctx)

			assert.True(t, s.IsAuthenticated())
			assert.Equal(t, "current", s.Token())
			assert.Equal(t, alice.ID, s.Session().User.ID)
		})
	}
}

func TestInitialize_NoRecord(t *testing.T) {
	s, _, hook := setup(t)

	s.Initialize(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "no stored session found", hook.LastEntry().Message)
}

func TestInitialize_DoesNotClearLoggedOutState(t *testing.T) {
	s, mem, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, StorageKey, []byte(`{"state":{"user":null,"token":null,"isAuthenticated":false},"version":0}`)))

	s.Initialize(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestInitialize_LogsStorageErrors(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	s := NewStore(brokenStorage{}, logger)

	s.Initialize(context.Background())

	assert.False(t, s.IsAuthenticated())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestSession_ReturnsCopy(t *testing.T) {
	s, _, _ := setup(t)
	require.NoError(t, s.SetAuth(context.Background(), alice, "tok"))

	sess := s.Session()
	sess.User.Name = "Mallory"

	assert.Equal(t, "Alice", s.Session().User.Name)
}
