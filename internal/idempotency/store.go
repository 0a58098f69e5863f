package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL    = 24 * time.Hour
	defaultPrefix = "idem:"

	statePending = "pending"
	stateDone    = "done"
)

// ErrInFlight is returned by Claim when another request holds the key.
var ErrInFlight = errors.New("request with this idempotency key is still in progress")

// Response is the stored result replayed to duplicate requests.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type entry struct {
	State    string    `json:"state"`
	Owner    string    `json:"owner"`
	Response *Response `json:"response,omitempty"`
}

// Claim is a held key. Token identifies the holder for Complete and Release.
type Claim struct {
	Key   string
	Token string
}

type Store interface {
	// Claim takes key for the caller. When the key already completed, the
	// stored response is returned instead and the Claim is empty.
	Claim(ctx context.Context, key string) (Claim, *Response, error)
	Complete(ctx context.Context, c Claim, resp Response) error
	Release(ctx context.Context, c Claim) error
}

// RedisStore keeps keys in Redis: SETNX for the claim, SET XX for the result.
type RedisStore struct {
	Client redis.Cmdable
	TTL    time.Duration
	Prefix string
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{Client: client, TTL: DefaultTTL, Prefix: defaultPrefix}
}

func (s *RedisStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultTTL
}

func (s *RedisStore) redisKey(key string) string {
	if s.Prefix == "" {
		return defaultPrefix + key
	}
	return s.Prefix + key
}

func (s *RedisStore) Claim(ctx context.Context, key string) (Claim, *Response, error) {
	c := Claim{Key: key, Token: uuid.NewString()}
	raw, err := json.Marshal(entry{State: statePending, Owner: c.Token})
	if err != nil {
		return Claim{}, nil, err
	}
	ok, err := s.Client.SetNX(ctx, s.redisKey(key), raw, s.ttl()).Result()
	if err != nil {
		return Claim{}, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if ok {
		return c, nil, nil
	}

	existing, err := s.load(ctx, key)
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return s.Claim(ctx, key)
	}
	if err != nil {
		return Claim{}, nil, err
	}
	if existing.State == stateDone && existing.Response != nil {
		return Claim{}, existing.Response, nil
	}
	return Claim{}, nil, ErrInFlight
}

func (s *RedisStore) Complete(ctx context.Context, c Claim, resp Response) error {
	if err := s.checkOwner(ctx, c); err != nil {
		return err
	}
	raw, err := json.Marshal(entry{State: stateDone, Owner: c.Token, Response: &resp})
	if err != nil {
		return err
	}
	if err := s.Client.SetXX(ctx, s.redisKey(c.Key), raw, s.ttl()).Err(); err != nil {
		return fmt.Errorf("store idempotent response: %w", err)
	}
	return nil
}

// Release drops a pending claim so the client may retry after a failure.
func (s *RedisStore) Release(ctx context.Context, c Claim) error {
	if err := s.checkOwner(ctx, c); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	if err := s.Client.Del(ctx, s.redisKey(c.Key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, key string) (entry, error) {
	raw, err := s.Client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		return entry{}, err
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, fmt.Errorf("decode idempotency entry: %w", err)
	}
	return e, nil
}

func (s *RedisStore) checkOwner(ctx context.Context, c Claim) error {
	e, err := s.load(ctx, c.Key)
	if err != nil {
		return err
	}
	if e.Owner != c.Token {
		return fmt.Errorf("idempotency key %q is held by another request", c.Key)
	}
	return nil
}
