// Package sessionstore persists conversation sessions in Redis.
// Sessions are stored as JSON documents under a per-identity key with a TTL
// equal to the idle timeout, so abandoned conversations expire server side.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/session"
	"coffeeshop/internal/pkg/errs"
)

const sessionKeyPrefix = "session:"

type customizationDTO struct {
	ProductID string   `json:"product_id"`
	Size      string   `json:"size,omitempty"`
	Sugar     int      `json:"sugar"`
	Ice       int      `json:"ice"`
	AddOns    []string `json:"add_ons,omitempty"`
	Quantity  int      `json:"quantity"`
}

type sessionDTO struct {
	Identity      string            `json:"identity"`
	State         int               `json:"state"`
	Customization *customizationDTO `json:"customization,omitempty"`
	LastActivity  time.Time         `json:"last_activity"`
}

// RedisSessionStore implements ports.SessionStore on top of a Redis client.
type RedisSessionStore struct {
	client      *redis.Client
	idleTimeout time.Duration
}

// NewRedisSessionStore creates a session store. Keys are written with a TTL
// equal to idleTimeout, refreshed on every save.
func NewRedisSessionStore(client *redis.Client, idleTimeout time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, idleTimeout: idleTimeout}
}

func (s *RedisSessionStore) Get(ctx context.Context, identity string) (*session.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+identity).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errs.NewObjectNotFoundError("session", identity)
	}
	if err != nil {
		return nil, err
	}

	var dto sessionDTO
	if err = json.Unmarshal(payload, &dto); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", identity, err)
	}

	return toDomain(dto)
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(fromDomain(sess))
	if err != nil {
		return fmt.Errorf("encode session %q: %w", sess.Identity(), err)
	}

	return s.client.Set(ctx, sessionKeyPrefix+sess.Identity(), payload, s.idleTimeout).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, identity string) error {
	return s.client.Del(ctx, sessionKeyPrefix+identity).Err()
}

// PruneExpired is a no-op: Redis evicts idle sessions through key TTLs.
func (s *RedisSessionStore) PruneExpired(_ context.Context, _ time.Time, _ time.Duration) (int, error) {
	return 0, nil
}

func fromDomain(sess *session.Session) sessionDTO {
	dto := sessionDTO{
		Identity:     sess.Identity(),
		State:        int(sess.State()),
		LastActivity: sess.LastActivity(),
	}

	if c := sess.Customization(); c != nil {
		dto.Customization = &customizationDTO{
			ProductID: c.ProductID().String(),
			Size:      c.Size(),
			Sugar:     int(c.Sugar()),
			Ice:       int(c.Ice()),
			AddOns:    c.AddOns(),
			Quantity:  c.Quantity(),
		}
	}

	return dto
}

func toDomain(dto sessionDTO) (*session.Session, error) {
	var customization *session.Customization
	if dto.Customization != nil {
		productID, err := kernel.UUIDFromString(dto.Customization.ProductID)
		if err != nil {
			return nil, err
		}
		customization = session.RestoreCustomization(
			productID,
			dto.Customization.Size,
			session.Level(dto.Customization.Sugar),
			session.Level(dto.Customization.Ice),
			dto.Customization.AddOns,
			dto.Customization.Quantity,
		)
	}

	return session.RestoreSession(dto.Identity, session.State(dto.State), customization, dto.LastActivity)
}
