package session

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
)

// NewStore builds the Store selected by session.backend.
func NewStore(ctx context.Context, cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		return ConnectRedis(ctx, cfg.RedisAddr, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
