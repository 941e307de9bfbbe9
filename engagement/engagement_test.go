package engagement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/engagement"
	"blog-fusion/models"
)

var now = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func TestApplyLikeAddsAndToggles(t *testing.T) {
	e := models.Engagement{}

	e1 := engagement.ApplyLike(e, "u1", "Alice", now)
	require.Len(t, e1.Likes, 1)
	assert.Equal(t, "u1", e1.Likes[0].UserID)
	assert.Equal(t, "Alice", e1.Likes[0].DisplayName)
	assert.True(t, e1.LikedBy("u1"))

	// second toggle removes the like again
	e2 := engagement.ApplyLike(e1, "u1", "Alice", now.Add(time.Minute))
	assert.Empty(t, e2.Likes)
	assert.False(t, e2.LikedBy("u1"))
}

func TestApplyLikeNeverDuplicates(t *testing.T) {
	e := models.Engagement{}
	e = engagement.ApplyLike(e, "u1", "Alice", now)
	e = engagement.ApplyLike(e, "u2", "Bob", now)
	e = engagement.ApplyLike(e, "u1", "Alice", now)
	e = engagement.ApplyLike(e, "u1", "Alice", now)

	count := 0
	for _, l := range e.Likes {
		if l.UserID == "u1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, e.LikedBy("u2"))
}

func TestApplyLikeDoesNotMutateInput(t *testing.T) {
	orig := models.Engagement{
		Likes: []models.Like{{UserID: "u1", DisplayName: "Alice", LikedAt: now}},
	}
	_ = engagement.ApplyLike(orig, "u1", "Alice", now)

	require.Len(t, orig.Likes, 1)
	assert.Equal(t, "u1", orig.Likes[0].UserID)
}

func TestApplyCommentAppends(t *testing.T) {
	e := models.Engagement{}

	e1, err := engagement.ApplyComment(e, models.Comment{
		ID: "c1", UserID: "u1", DisplayName: "Alice", Text: "first", CreatedAt: now,
	})
	require.NoError(t, err)
	e2, err := engagement.ApplyComment(e1, models.Comment{
		ID: "c2", UserID: "u2", DisplayName: "Bob", Text: "second", CreatedAt: now.Add(time.Second),
	})
	require.NoError(t, err)

	require.Len(t, e2.Comments, 2)
	assert.Equal(t, "first", e2.Comments[0].Text)
	assert.Equal(t, "second", e2.Comments[1].Text)
}

func TestApplyCommentRejectsBlankText(t *testing.T) {
	e := models.Engagement{ShareCount: 3}

	out, err := engagement.ApplyComment(e, models.Comment{ID: "c1", UserID: "u1", Text: "   \t "})
	require.ErrorIs(t, err, engagement.ErrEmptyComment)
	// state unchanged on rejection
	assert.Equal(t, e, out)
}

func TestApplyShareIncrements(t *testing.T) {
	e := models.Engagement{}
	e = engagement.ApplyShare(e)
	e = engagement.ApplyShare(e)
	assert.Equal(t, int64(2), e.ShareCount)
}

func TestApplySaveToggles(t *testing.T) {
	saved := engagement.ApplySave(nil, "b1")
	assert.Equal(t, []string{"b1"}, saved)

	saved = engagement.ApplySave(saved, "b2")
	assert.Equal(t, []string{"b1", "b2"}, saved)

	// removing the first entry keeps the order of the rest
	saved = engagement.ApplySave(saved, "b1")
	assert.Equal(t, []string{"b2"}, saved)

	saved = engagement.ApplySave(saved, "b2")
	assert.Empty(t, saved)
}

func TestRemoveSave(t *testing.T) {
	saved := engagement.RemoveSave([]string{"b1", "b2", "b3"}, "b2")
	assert.Equal(t, []string{"b1", "b3"}, saved)

	// removing an absent id changes nothing
	saved = engagement.RemoveSave(saved, "b9")
	assert.Equal(t, []string{"b1", "b3"}, saved)
}

func TestApplySaveDoesNotMutateInput(t *testing.T) {
	orig := []string{"b1", "b2"}
	_ = engagement.ApplySave(orig, "b1")
	assert.Equal(t, []string{"b1", "b2"}, orig)
}
