package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_LocalFanOut(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	notice := ChangeNotice{Table: TableAttendanceLogs, Action: ChangeInsert, ID: "log-1"}
	hub.Notify(context.Background(), notice)

	select {
	case got := <-ch:
		assert.Equal(t, notice, got)
	case <-time.After(time.Second):
		t.Fatal("notice not delivered")
	}
}

func TestHub_CancelRemovesSubscriber(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	_, cancel1 := hub.Subscribe()
	_, cancel2 := hub.Subscribe()
	require.Equal(t, 2, hub.SubscriberCount())

	cancel1()
	assert.Equal(t, 1, hub.SubscriberCount())

	cancel2()
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	// Nobody reads ch; overflow past the buffer must not block Notify.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Notify(context.Background(), ChangeNotice{Table: TableOnlineStatus, Action: ChangeUpdate})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a slow subscriber")
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestHub_FanOutReachesAllSubscribers(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Notify(context.Background(), ChangeNotice{Table: TableAttendanceLogs, Action: ChangeDelete, ID: "x"})

	for _, ch := range []<-chan ChangeNotice{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, "x", got.ID)
		case <-time.After(time.Second):
			t.Fatal("notice not delivered to all subscribers")
		}
	}
}
