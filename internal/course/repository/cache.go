package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"lms-backend/internal/course/domain"
)

const allCoursesKey = "courses:all"

type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates the redis-backed course response cache. It shares
// the client with the session store but uses its own key namespaces.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func courseKey(id string) string {
	return "course:" + id
}

func (c *redisCache) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	val, err := c.client.Get(ctx, courseKey(id)).Result()
	if err == redis.Nil {
		return nil, nil // miss
	}
	if err != nil {
		return nil, err
	}

	var course domain.Course
	if err := json.Unmarshal([]byte(val), &course); err != nil {
		return nil, fmt.Errorf("cache: failed to unmarshal course: %w", err)
	}
	return &course, nil
}

func (c *redisCache) SetCourse(ctx context.Context, course *domain.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal course: %w", err)
	}
	return c.client.Set(ctx, courseKey(course.ID), data, 0).Err()
}

func (c *redisCache) GetAll(ctx context.Context) ([]domain.Course, error) {
	val, err := c.client.Get(ctx, allCoursesKey).Result()
	if err == redis.Nil {
		return nil, nil // miss
	}
	if err != nil {
		return nil, err
	}

	var courses []domain.Course
	if err := json.Unmarshal([]byte(val), &courses); err != nil {
		return nil, fmt.Errorf("cache: failed to unmarshal courses: %w", err)
	}
	return courses, nil
}

func (c *redisCache) SetAll(ctx context.Context, courses []domain.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal courses: %w", err)
	}
	return c.client.Set(ctx, allCoursesKey, data, 0).Err()
}

// Invalidate drops both the per-course entry and the aggregate list so the
// next read goes back to the document store.
func (c *redisCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, courseKey(id), allCoursesKey).Err()
}
