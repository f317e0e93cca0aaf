// internal/services/crm/dynamics-sync/ledger.go
package dynamicssync

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLedger keeps one hash per RFP, keyed by entity kind, so a later sync
// of the same kind overwrites the earlier link.
type RedisLedger struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisLedger(client redis.Cmdable, prefix string, ttl time.Duration) *RedisLedger {
	return &RedisLedger{client: client, prefix: prefix, ttl: ttl}
}

func (l *RedisLedger) key(rfpID string) string {
	return l.prefix + rfpID
}

func (l *RedisLedger) Record(ctx context.Context, link SyncLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("marshal sync link: %w", err)
	}

	key := l.key(link.RFPID)
	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, string(link.Entity), data)
		if l.ttl > 0 {
			pipe.Expire(ctx, key, l.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record sync link for %s: %w", link.RFPID, err)
	}
	return nil
}

// Links returns the recorded links ordered by entity kind.
func (l *RedisLedger) Links(ctx context.Context, rfpID string) ([]SyncLink, error) {
	fields, err := l.client.HGetAll(ctx, l.key(rfpID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read sync links for %s: %w", rfpID, err)
	}

	links := make([]SyncLink, 0, len(fields))
	for entity, raw := range fields {
		var link SyncLink
		if err := json.Unmarshal([]byte(raw), &link); err != nil {
			return nil, fmt.Errorf("decode %s sync link for %s: %w", entity, rfpID, err)
		}
		links = append(links, link)
	}

	sort.Slice(links, func(i, j int) bool { return links[i].Entity < links[j].Entity })
	return links, nil
}
