package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

const defaultResumeCacheTTL = 10 * time.Minute

type resumeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResumeCache(client *redis.Client, ttl time.Duration) domain.ResumeCache {
	if ttl <= 0 {
		ttl = defaultResumeCacheTTL
	}
	return &resumeCache{
		client: client,
		ttl:    ttl,
	}
}

func ownerResumesKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("resumes:owner:%s", ownerID.String())
}

func (c *resumeCache) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resume, bool, error) {
	data, err := c.client.Get(ctx, ownerResumesKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resumes []*domain.Resume
	if err := json.Unmarshal(data, &resumes); err != nil {
		return nil, false, err
	}
	return resumes, true, nil
}

func (c *resumeCache) SetByOwner(ctx context.Context, ownerID uuid.UUID, resumes []*domain.Resume) error {
	if resumes == nil {
		resumes = []*domain.Resume{}
	}
	data, err := json.Marshal(resumes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ownerResumesKey(ownerID), data, c.ttl).Err()
}

func (c *resumeCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return c.client.Del(ctx, ownerResumesKey(ownerID)).Err()
}
