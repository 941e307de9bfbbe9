package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-fusion/internal/logger"
	"blog-fusion/models"
)

// EngagementUpdate is the payload fanned out to watchers of a blog.
type EngagementUpdate struct {
	BlogID     string
	Engagement models.Engagement
}

// BlogWatcher fans out engagement updates to per-blog subscribers. Updates
// arrive either from Publish (same-process writes) or from the Mongo change
// stream started by Run, so watchers also see writes from other instances.
type BlogWatcher struct {
	col *mongo.Collection

	mu   sync.Mutex
	subs map[string]map[chan EngagementUpdate]struct{}
}

func NewBlogWatcher(db *mongo.Database) *BlogWatcher {
	w := &BlogWatcher{subs: make(map[string]map[chan EngagementUpdate]struct{})}
	if db != nil {
		w.col = db.Collection("blogs")
	}
	return w
}

// Subscribe registers a watcher for blogID. The returned cancel function
// must be called exactly once; it closes the channel.
func (w *BlogWatcher) Subscribe(blogID string) (<-chan EngagementUpdate, func()) {
	ch := make(chan EngagementUpdate, 8)

	w.mu.Lock()
	set, ok := w.subs[blogID]
	if !ok {
		set = make(map[chan EngagementUpdate]struct{})
		w.subs[blogID] = set
	}
	set[ch] = struct{}{}
	w.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			if set, ok := w.subs[blogID]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(w.subs, blogID)
				}
			}
			w.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an update to every current subscriber of the blog.
// Slow subscribers with a full buffer are skipped rather than blocked on.
func (w *BlogWatcher) Publish(u EngagementUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs[u.BlogID] {
		select {
		case ch <- u:
		default:
		}
	}
}

// ListenerCount reports the number of active subscriptions for blogID.
func (w *BlogWatcher) ListenerCount(blogID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs[blogID])
}

// Run tails the blogs change stream and publishes engagement updates until
// ctx is done. It requires the collection handle given to NewBlogWatcher.
func (w *BlogWatcher) Run(ctx context.Context) error {
	if w.col == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": bson.A{"update", "replace"}}}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := w.col.Watch(ctx, pipeline, opts)
	if err != nil {
		return mapError(err)
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var ev struct {
			FullDocument models.Blog `bson:"fullDocument"`
			DocumentKey  struct {
				ID primitive.ObjectID `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := stream.Decode(&ev); err != nil {
			logger.ErrorWithFields("failed to decode change stream event", logger.Fields{"error": err.Error()})
			continue
		}
		w.Publish(EngagementUpdate{
			BlogID:     ev.DocumentKey.ID.Hex(),
			Engagement: ev.FullDocument.Engagement,
		})
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return mapError(err)
	}
	return ctx.Err()
}
