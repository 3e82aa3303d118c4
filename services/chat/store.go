package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "chat:sess:"
	phoneKeyPrefix   = "chat:phone:"
)

// SessionStore persists conversation sessions keyed by chat user id.
// Get returns (nil, nil) when no session exists.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Set(ctx context.Context, userID string, session *Session) error
	Clear(ctx context.Context, userID string) error
}

// PhoneBook persists the durable phone binding per chat user id.
type PhoneBook interface {
	Get(ctx context.Context, userID string) (string, error)
	Bind(ctx context.Context, userID, phone string) error
}

// RedisSessionStore implements SessionStore and PhoneBook on Redis.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, userID string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, userID string, session *Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+userID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+userID).Err()
}

// RedisPhoneBook stores phone bindings without expiry.
type RedisPhoneBook struct {
	client *redis.Client
}

func NewRedisPhoneBook(client *redis.Client) *RedisPhoneBook {
	return &RedisPhoneBook{client: client}
}

func (p *RedisPhoneBook) Get(ctx context.Context, userID string) (string, error) {
	phone, err := p.client.Get(ctx, phoneKeyPrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return phone, err
}

func (p *RedisPhoneBook) Bind(ctx context.Context, userID, phone string) error {
	return p.client.Set(ctx, phoneKeyPrefix+userID, phone, 0).Err()
}

// userLocks serializes message handling per chat user so two concurrent
// messages from the same user cannot interleave steps. Cross-user traffic is
// unconstrained.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{m: make(map[string]*sync.Mutex)}
}

func (l *userLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock := l.m[userID]
	if lock == nil {
		lock = &sync.Mutex{}
		l.m[userID] = lock
	}
	return lock
}
