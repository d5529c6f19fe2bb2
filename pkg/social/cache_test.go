package social_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"

	"github.com/socialsphere/socialsphere/pkg/social"
	"github.com/socialsphere/socialsphere/pkg/users"
)

func newTestCache(t *testing.T) *social.CacheStorage {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return social.NewCacheStorage(rdb)
}

func TestCacheStorage_FeedRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	posts := []social.Post{
		{ID: "p1", Content: "hello", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), Reactions: map[string]int{"like": 3}},
	}

	err := cache.StoreFeed(9, posts)
	if err != nil {
		t.Fatal(err)
	}

	cached, err := cache.GetFeed(9)
	if err != nil {
		t.Fatal(err)
	}

	if len(cached) != 1 || cached[0].ID != "p1" || cached[0].Reactions["like"] != 3 {
		t.Fatalf("unexpected cached feed %v", cached)
	}

	_, err = cache.GetFeed(10)
	if err == nil {
		t.Fatal("expected a miss for another user")
	}
}

func TestStore_FetchFeed_FallsBackToCachedSnapshot(t *testing.T) {
	cache := newTestCache(t)

	err := cache.StoreFeed(9, []social.Post{{ID: "cached-1", Content: "from cache"}})
	if err != nil {
		t.Fatal(err)
	}

	store := social.NewStore(&fakeClient{}, nil, cache, social.Config{})
	store.SetViewer(users.User{ID: 9, Name: "You"})

	store.FetchFeed(context.Background(), social.FeedRequest{Reset: true})

	if !equalIDs(feedIDs(store), []string{"cached-1"}) {
		t.Fatalf("expected cached snapshot, got %v", feedIDs(store))
	}
}

func TestStore_FetchNotifications_FallsBackToCachedSnapshot(t *testing.T) {
	cache := newTestCache(t)

	err := cache.StoreNotifications(9, []social.Notification{{ID: "cached-n1", Message: "hi"}})
	if err != nil {
		t.Fatal(err)
	}

	store := social.NewStore(&fakeClient{}, nil, cache, social.Config{})
	store.SetViewer(users.User{ID: 9, Name: "You"})

	store.FetchNotifications(context.Background())

	notifications := store.Notifications()
	if len(notifications) != 1 || notifications[0].ID != "cached-n1" {
		t.Fatalf("expected cached notifications, got %v", notifications)
	}
}
