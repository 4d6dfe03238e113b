package storage

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()

	s, closeFn, err := Open(ctx, Options{Driver: DriverMemory}, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &MemoryStore{}, s)

	s, closeFn, err = Open(ctx, Options{Driver: DriverFile, Dir: t.TempDir()}, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &FileStore{}, s)

	_, _, err = Open(ctx, Options{Driver: DriverPostgres}, logger)
	assert.Error(t, err)

	_, _, err = Open(ctx, Options{Driver: "redis"}, logger)
	assert.Error(t, err)
}
