package social

import (
	"context"
	"log"
	"strings"
)

// FetchNotifications replaces the notification list with the server's,
// lower-casing the kind and formatting a display time. Failures degrade to
// the cached snapshot or the seed list.
func (s *Store) FetchNotifications(ctx context.Context) {
	s.Lock()
	if s.offline {
		s.notifications = s.fallbackNotifications()
		s.Unlock()
		return
	}
	viewer := s.viewerOrSample()
	s.Unlock()

	items, err := s.client.ListNotifications(ctx)

	s.Lock()
	defer s.Unlock()

	if err != nil {
		log.Printf("notification fetch failed, serving fallback: %v", err)
		s.notifications = s.fallbackNotifications()
		return
	}

	notifications := make([]Notification, 0, len(items))
	for _, item := range items {
		item.Kind = strings.ToLower(item.Kind)
		item.Time = formatClock(item.CreatedAt)
		notifications = append(notifications, item)
	}

	s.notifications = notifications

	if s.cache != nil {
		if err := s.cache.StoreNotifications(viewer.ID, notifications); err != nil {
			log.Printf("notification cache store failed: %v", err)
		}
	}
}

// MarkNotificationRead flips the read flag optimistically and syncs it
// fire-and-forget; a failed sync leaves the optimistic state standing.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) {
	s.Lock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			break
		}
	}
	s.Unlock()

	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		log.Printf("notification read sync failed: %v", err)
	}
}

// UnreadNotifications returns the number of unread notifications.
func (s *Store) UnreadNotifications() int {
	s.Lock()
	defer s.Unlock()

	count := 0
	for _, notification := range s.notifications {
		if !notification.Read {
			count++
		}
	}

	return count
}

// fallbackNotifications returns the cached snapshot when available,
// otherwise the seed list. Callers must hold the lock.
func (s *Store) fallbackNotifications() []Notification {
	if s.cache != nil {
		cached, err := s.cache.GetNotifications(s.viewerOrSample().ID)
		if err == nil && len(cached) > 0 {
			return cached
		}
	}

	return seedNotifications()
}
