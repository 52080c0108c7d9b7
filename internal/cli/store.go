package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/session"
)

// Store backends accepted by --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// EnvEncryptionKey supplies the session encryption key when no flag is given.
const EnvEncryptionKey = "AUTOMATA_ENCRYPTION_KEY"

// DefaultSessionDir is where the file store keeps sessions.
var DefaultSessionDir = filepath.Join(".automata", "sessions")

// StoreOptions selects and configures the session store.
type StoreOptions struct {
	Kind          string
	SessionDir    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	RedisTTL      time.Duration

	// EncryptionKey (base64 or hex, 32 bytes) seals snapshots at rest.
	EncryptionKey string
}

// OpenManager builds a session manager over the selected store. Redis stores
// also lock through Redis so several servers can share sessions. The returned
// func releases the backend.
func OpenManager(opts StoreOptions, logger *slog.Logger) (*session.Manager, func() error, error) {
	var (
		store   ports.SessionStore
		closeFn = func() error { return nil }
		mgrOpts = []session.Option{session.WithLogger(logger)}
	)

	switch opts.Kind {
	case "", StoreMemory:
		store = memory.NewStore()
	case StoreFile:
		dir := opts.SessionDir
		if dir == "" {
			dir = DefaultSessionDir
		}
		store = file.NewStore(dir)
	case StoreRedis:
		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		storeOpts := []redis.Option{redis.WithPrefix(prefix)}
		if opts.RedisTTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(opts.RedisTTL))
		}
		rs := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
		store, closeFn = rs, rs.Close
		mgrOpts = append(mgrOpts, session.WithLocker(redis.NewLocker(rs.Client(), prefix)))
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want memory, file or redis)", opts.Kind)
	}

	if opts.EncryptionKey != "" {
		key, err := middleware.ParseKey(opts.EncryptionKey)
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		store = middleware.Wrap(store, mw)
		logger.Debug("session encryption enabled")
	}

	return session.NewManager(store, mgrOpts...), closeFn, nil
}
