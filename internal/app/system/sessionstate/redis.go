package sessionstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the marker only while it still holds our value,
// so a late release never clears another toggle's marker.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps state as JSON strings with a sliding TTL.
type RedisStore struct {
	rdb       redis.UniversalClient
	prefix    string
	ttl       time.Duration
	toggleTTL time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, prefix string, ttl, toggleTTL time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "hostelhub"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if toggleTTL <= 0 {
		toggleTTL = DefaultToggleTTL
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl, toggleTTL: toggleTTL}
}

func (s *RedisStore) stateKey(sid string) string  { return s.prefix + ":ui:" + sid }
func (s *RedisStore) toggleKey(sid string) string { return s.prefix + ":toggle:" + sid }

func (s *RedisStore) Load(ctx context.Context, sessionID string) (State, error) {
	if sessionID == "" {
		return State{}, ErrNoSession
	}
	raw, err := s.rdb.Get(ctx, s.stateKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		st := Default()
		st.ProcessingAgentID, err = s.Processing(ctx, sessionID)
		return st, err
	}
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		// unreadable state is replaced, not fatal
		st = Default()
	}
	st = normalize(st)
	st.ProcessingAgentID, err = s.Processing(ctx, sessionID)
	return st, err
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, st State) error {
	if sessionID == "" {
		return ErrNoSession
	}
	// the marker has its own key
	st.ProcessingAgentID = ""
	data, err := json.Marshal(normalize(st))
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.stateKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) AcquireToggle(ctx context.Context, sessionID, agentID string) (bool, error) {
	if sessionID == "" {
		return false, ErrNoSession
	}
	return s.rdb.SetNX(ctx, s.toggleKey(sessionID), agentID, s.toggleTTL).Result()
}

func (s *RedisStore) ReleaseToggle(ctx context.Context, sessionID, agentID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	return releaseScript.Run(ctx, s.rdb, []string{s.toggleKey(sessionID)}, agentID).Err()
}

func (s *RedisStore) Processing(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNoSession
	}
	v, err := s.rdb.Get(ctx, s.toggleKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}
