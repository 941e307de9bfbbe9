package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-fusion/models"
)

func recvUpdate(t *testing.T, ch <-chan EngagementUpdate) EngagementUpdate {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "channel closed before update arrived")
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
		return EngagementUpdate{}
	}
}

func TestBlogWatcherFanOut(t *testing.T) {
	w := NewBlogWatcher(nil)

	ch1, cancel1 := w.Subscribe("b1")
	ch2, cancel2 := w.Subscribe("b1")
	chOther, cancelOther := w.Subscribe("b2")
	defer cancel1()
	defer cancel2()
	defer cancelOther()

	w.Publish(EngagementUpdate{BlogID: "b1", Engagement: models.Engagement{ShareCount: 7}})

	u1 := recvUpdate(t, ch1)
	u2 := recvUpdate(t, ch2)
	assert.Equal(t, int64(7), u1.Engagement.ShareCount)
	assert.Equal(t, int64(7), u2.Engagement.ShareCount)

	// the other blog's subscriber sees nothing
	select {
	case u := <-chOther:
		t.Fatalf("unexpected update for other blog: %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBlogWatcherUnsubscribeDropsListener(t *testing.T) {
	w := NewBlogWatcher(nil)

	ch1, cancel1 := w.Subscribe("b1")
	_, cancel2 := w.Subscribe("b1")
	assert.Equal(t, 2, w.ListenerCount("b1"))

	cancel2()
	assert.Equal(t, 1, w.ListenerCount("b1"))

	// publishing after one unsubscribe still reaches the remaining listener
	w.Publish(EngagementUpdate{BlogID: "b1"})
	recvUpdate(t, ch1)

	cancel1()
	assert.Equal(t, 0, w.ListenerCount("b1"))

	// channel is closed after cancel
	_, ok := <-ch1
	assert.False(t, ok)
}

func TestBlogWatcherCancelIsIdempotent(t *testing.T) {
	w := NewBlogWatcher(nil)

	_, cancel := w.Subscribe("b1")
	cancel()
	cancel()
	assert.Equal(t, 0, w.ListenerCount("b1"))
}

func TestBlogWatcherPublishWithoutSubscribersIsNoop(t *testing.T) {
	w := NewBlogWatcher(nil)
	w.Publish(EngagementUpdate{BlogID: "nobody"})
	assert.Equal(t, 0, w.ListenerCount("nobody"))
}

func TestBlogWatcherSkipsSlowSubscriber(t *testing.T) {
	w := NewBlogWatcher(nil)

	ch, cancel := w.Subscribe("b1")
	defer cancel()

	// overflow the buffer; Publish must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			w.Publish(EngagementUpdate{BlogID: "b1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
	// buffered updates remain readable
	recvUpdate(t, ch)
}
