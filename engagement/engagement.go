// Package engagement holds the pure state transitions for blog engagement.
// Every function returns a new value and never mutates its input, so the
// same transition can be retried safely when a concurrent write wins.
package engagement

import (
	"errors"
	"strings"
	"time"

	"blog-fusion/models"
)

// ErrEmptyComment is returned when a comment has no text after trimming.
var ErrEmptyComment = errors.New("engagement: comment text is empty")

// ApplyLike toggles userID's like. Liking twice returns to the original
// membership; a user never appears more than once in the likes array.
func ApplyLike(e models.Engagement, userID, displayName string, now time.Time) models.Engagement {
	out := e
	out.Likes = make([]models.Like, 0, len(e.Likes)+1)

	removed := false
	for _, l := range e.Likes {
		if l.UserID == userID {
			removed = true
			continue
		}
		out.Likes = append(out.Likes, l)
	}
	if !removed {
		out.Likes = append(out.Likes, models.Like{
			UserID:      userID,
			DisplayName: displayName,
			LikedAt:     now,
		})
	}
	return out
}

// ApplyComment appends c to the comment list. Comments are append-only and
// keep insertion order.
func ApplyComment(e models.Engagement, c models.Comment) (models.Engagement, error) {
	if strings.TrimSpace(c.Text) == "" {
		return e, ErrEmptyComment
	}

	out := e
	out.Comments = make([]models.Comment, 0, len(e.Comments)+1)
	out.Comments = append(out.Comments, e.Comments...)
	out.Comments = append(out.Comments, c)
	return out, nil
}

// ApplyShare increments the share counter. Shares are not tracked per user.
func ApplyShare(e models.Engagement) models.Engagement {
	out := e
	out.ShareCount++
	return out
}

// ApplySave toggles blogID's membership in the user's saved list while
// preserving the order of the remaining entries.
func ApplySave(savedIDs []string, blogID string) []string {
	out := make([]string, 0, len(savedIDs)+1)

	removed := false
	for _, id := range savedIDs {
		if id == blogID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, blogID)
	}
	return out
}

// RemoveSave drops blogID from the saved list. Removing an absent entry
// leaves the list unchanged.
func RemoveSave(savedIDs []string, blogID string) []string {
	out := make([]string, 0, len(savedIDs))
	for _, id := range savedIDs {
		if id == blogID {
			continue
		}
		out = append(out, id)
	}
	return out
}
