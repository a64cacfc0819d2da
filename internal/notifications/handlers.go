package notifications

import (
	"encoding/json"
	"net/http"
	"time"
)

// Notification is a feed entry. There is no persistence or push pipeline:
// the feed is a static placeholder served per authenticated caller.
type Notification struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"` // comment, mention, case_update, follow, featured
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func mockFeed(now time.Time) []Notification {
	return []Notification{
		{
			ID:        1,
			Type:      "comment",
			Title:     "New comment on your case",
			Message:   "Dr. Sarah Johnson commented on 'Complex Cardiac Arrhythmia Case'",
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        2,
			Type:      "case_update",
			Title:     "Case status updated",
			Message:   "Your case 'Neurological Presentation Mystery' has been marked as resolved",
			CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:        3,
			Type:      "featured",
			Title:     "Case featured",
			Message:   "Your case 'Rare Metabolic Disorder' has been featured in this week's highlights",
			Read:      true,
			CreatedAt: now.Add(-3 * 24 * time.Hour),
		},
		{
			ID:        4,
			Type:      "mention",
			Title:     "You were mentioned",
			Message:   "Dr. Michael Chen mentioned you in a comment on 'Emergency Trauma Case'",
			Read:      true,
			CreatedAt: now.Add(-5 * 24 * time.Hour),
		},
	}
}

// FeedHandler handles GET /api/notifications.
func FeedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mockFeed(time.Now()))
}
