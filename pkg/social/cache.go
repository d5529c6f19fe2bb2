package social

import (
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// CacheStorage keeps the last successfully fetched feed and notification
// snapshots in redis so reads can degrade to recent data instead of the
// compiled-in seeds when the API is unreachable.
type CacheStorage struct {
	rdb *redis.Client
}

func NewCacheStorage(rdb *redis.Client) *CacheStorage {
	return &CacheStorage{
		rdb: rdb,
	}
}

func (s *CacheStorage) StoreFeed(user int, posts []Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	return s.rdb.Set(s.rdb.Context(), feedCacheKey(user), string(data), 0).Err()
}

func (s *CacheStorage) GetFeed(user int) ([]Post, error) {
	data, err := s.rdb.Get(s.rdb.Context(), feedCacheKey(user)).Result()
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0)
	err = json.Unmarshal([]byte(data), &posts)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *CacheStorage) StoreNotifications(user int, notifications []Notification) error {
	data, err := json.Marshal(notifications)
	if err != nil {
		return err
	}

	return s.rdb.Set(s.rdb.Context(), notificationsCacheKey(user), string(data), 0).Err()
}

func (s *CacheStorage) GetNotifications(user int) ([]Notification, error) {
	data, err := s.rdb.Get(s.rdb.Context(), notificationsCacheKey(user)).Result()
	if err != nil {
		return nil, err
	}

	notifications := make([]Notification, 0)
	err = json.Unmarshal([]byte(data), &notifications)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func feedCacheKey(user int) string {
	return fmt.Sprintf("feed_cache_%d", user)
}

func notificationsCacheKey(user int) string {
	return fmt.Sprintf("notifications_cache_%d", user)
}
