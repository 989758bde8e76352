package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/iho/paybatch/internal/domain"
)

// BalanceCache implements usecase.BalanceCache. Final balances are
// written to a hash per run plus a "latest" hash for consumers that
// only care about the most recent run. Write-only from the engine's
// point of view.
type BalanceCache struct {
	client *redis.Client
	prefix string
}

// NewBalanceCache creates a new BalanceCache.
func NewBalanceCache(client *redis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "paybatch:balances:",
	}
}

// SetAll writes every account's final balances in one pipeline.
func (c *BalanceCache) SetAll(ctx context.Context, runID string, accounts []*domain.Account) error {
	pipe := c.client.Pipeline()

	for _, key := range []string{c.prefix + runID, c.prefix + "latest"} {
		for _, acc := range accounts {
			field := strconv.FormatUint(uint64(acc.ClientID), 10)
			value := fmt.Sprintf("available=%s held=%s total=%s locked=%t",
				acc.Available, acc.Held, acc.Total, acc.Locked)
			pipe.HSet(ctx, key, field, value)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write balances: %w", err)
	}

	return nil
}
