package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type memoryEntry struct {
	value    string
	hash     map[string]string
	expireAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// MemoryCache is an in-process ICache covering the string and hash
// commands used by the session store.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]*memoryEntry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]*memoryEntry),
		now:  time.Now,
	}
}

// lookup must be called with mu held
func (m *MemoryCache) lookup(key string) (*memoryEntry, bool) {
	e, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		delete(m.data, key)
		return nil, false
	}
	return e, true
}

func (m *MemoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "get", key)
	e, ok := m.lookup(key)
	if !ok || e.hash != nil {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(e.value)
	return cmd
}

func (m *MemoryCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &memoryEntry{value: toString(value)}
	if expiration > 0 {
		e.expireAt = m.now().Add(expiration)
	}
	m.data[key] = e
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	cmd.SetVal("OK")
	return cmd
}

func (m *MemoryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := int64(0)
	for _, key := range keys {
		if _, ok := m.lookup(key); ok {
			delete(m.data, key)
			count++
		}
	}
	cmd := redis.NewIntCmd(ctx, "del", keys)
	cmd.SetVal(count)
	return cmd
}

func (m *MemoryCache) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := int64(0)
	for _, key := range keys {
		if _, ok := m.lookup(key); ok {
			count++
		}
	}
	cmd := redis.NewIntCmd(ctx, "exists", keys)
	cmd.SetVal(count)
	return cmd
}

func (m *MemoryCache) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx, "hset", key, values)
	if len(values)%2 != 0 {
		cmd.SetErr(fmt.Errorf("ERR wrong number of arguments for 'hset' command"))
		return cmd
	}
	e, ok := m.lookup(key)
	if !ok {
		e = &memoryEntry{hash: make(map[string]string)}
		m.data[key] = e
	}
	if e.hash == nil {
		cmd.SetErr(fmt.Errorf("WRONGTYPE Operation against a key holding the wrong kind of value"))
		return cmd
	}
	added := int64(0)
	for i := 0; i < len(values); i += 2 {
		field := toString(values[i])
		if _, exists := e.hash[field]; !exists {
			added++
		}
		e.hash[field] = toString(values[i+1])
	}
	cmd.SetVal(added)
	return cmd
}

func (m *MemoryCache) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewStringCmd(ctx, "hget", key, field)
	e, ok := m.lookup(key)
	if !ok || e.hash == nil {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	val, ok := e.hash[field]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *MemoryCache) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewMapStringStringCmd(ctx, "hgetall", key)
	out := make(map[string]string)
	if e, ok := m.lookup(key); ok {
		for k, v := range e.hash {
			out[k] = v
		}
	}
	cmd.SetVal(out)
	return cmd
}

func (m *MemoryCache) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewIntCmd(ctx, "hdel", key, fields)
	e, ok := m.lookup(key)
	if !ok || e.hash == nil {
		cmd.SetVal(0)
		return cmd
	}
	removed := int64(0)
	for _, f := range fields {
		if _, exists := e.hash[f]; exists {
			delete(e.hash, f)
			removed++
		}
	}
	if len(e.hash) == 0 {
		delete(m.data, key)
	}
	cmd.SetVal(removed)
	return cmd
}

func (m *MemoryCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := redis.NewBoolCmd(ctx, "expire", key, expiration)
	e, ok := m.lookup(key)
	if !ok {
		cmd.SetVal(false)
		return cmd
	}
	if expiration <= 0 {
		delete(m.data, key)
	} else {
		e.expireAt = m.now().Add(expiration)
	}
	cmd.SetVal(true)
	return cmd
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
