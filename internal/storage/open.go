package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver        string
	Dir           string
	DSN           string
	Namespace     string
	RunMigrations bool
}

// Open builds the Storage selected by opts.Driver. The returned close
// function releases any connection pool and is never nil.
func Open(ctx context.Context, opts Options, logger logrus.FieldLogger) (Storage, func(), error) {
	noop := func() {}

	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStore(), noop, nil

	case DriverFile, "":
		fs, err := NewFileStore(opts.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case DriverPostgres:
		if opts.DSN == "" {
			return nil, noop, fmt.Errorf("postgres storage requires a DSN")
		}
		if opts.RunMigrations {
			if err := RunMigrations(opts.DSN, logger); err != nil {
				return nil, noop, err
			}
		}
		pool, err := NewPool(ctx, opts.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("db connect: %w", err)
		}
		return NewPostgresStore(pool, opts.Namespace), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
