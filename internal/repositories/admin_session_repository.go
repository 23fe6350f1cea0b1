package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const adminSessionPrefix = "admin_session:"

// AdminSessionRepository keeps admin session tokens in Redis so they expire
// on their own and survive API restarts.
type AdminSessionRepository struct {
	client *redis.Client
}

func NewAdminSessionRepository(client *redis.Client) *AdminSessionRepository {
	return &AdminSessionRepository{client: client}
}

func (r *AdminSessionRepository) Create(token string, ttl time.Duration) error {
	ctx := context.Background()

	return r.client.Set(ctx, adminSessionPrefix+token, "1", ttl).Err()
}

func (r *AdminSessionRepository) Exists(token string) (bool, error) {
	ctx := context.Background()

	n, err := r.client.Exists(ctx, adminSessionPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AdminSessionRepository) Delete(token string) error {
	ctx := context.Background()

	return r.client.Del(ctx, adminSessionPrefix+token).Err()
}
