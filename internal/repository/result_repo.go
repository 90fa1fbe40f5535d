package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"remix-backend/internal/models"
)

// ErrResultNotFound is returned for unknown or expired result ids.
var ErrResultNotFound = errors.New("result not found")

const resultKeyPrefix = "result:"

// ResultRepo parks generated outputs in Redis so the results page can read
// them after a navigation. Entries expire after ttl.
type ResultRepo struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewResultRepo(rdb *redis.Client, ttl time.Duration) *ResultRepo {
	return &ResultRepo{rdb: rdb, ttl: ttl, now: time.Now}
}

func (r *ResultRepo) Save(ctx context.Context, output, mode string) (*models.StoredResult, error) {
	res := &models.StoredResult{
		ID:        uuid.NewString(),
		Output:    output,
		Mode:      mode,
		CreatedAt: r.now().UTC(),
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	if err := r.rdb.Set(ctx, resultKey(res.ID), payload, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store result: %w", err)
	}
	return res, nil
}

func (r *ResultRepo) Get(ctx context.Context, id string) (*models.StoredResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrResultNotFound
	}

	payload, err := r.rdb.Get(ctx, resultKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}

	res := &models.StoredResult{}
	if err := json.Unmarshal(payload, res); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return res, nil
}

func resultKey(id string) string {
	return resultKeyPrefix + id
}
