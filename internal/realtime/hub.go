package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const changeChannel = "realtime:changes"

// subscriberBuffer bounds the per-client queue. When a subscriber cannot
// keep up, further notices to it are dropped; clients recover on their next
// full re-fetch.
const subscriberBuffer = 16

// Hub fans change notices out to connected SSE clients. Notices travel
// through Redis pub/sub so every API instance sees writes made by its peers;
// without Redis the hub degrades to single-instance local fan-out.
type Hub struct {
	rdb    *redis.Client
	logger *zap.Logger

	mu   sync.RWMutex
	subs map[chan ChangeNotice]struct{}
}

func NewHub(rdb *redis.Client, logger *zap.Logger) *Hub {
	return &Hub{
		rdb:    rdb,
		logger: logger.Named("realtime.hub"),
		subs:   make(map[chan ChangeNotice]struct{}),
	}
}

// Notify publishes a change notice. With Redis the notice loops back through
// the subscription in Run, so it is not also fanned out locally here.
func (h *Hub) Notify(ctx context.Context, n ChangeNotice) {
	if h.rdb == nil {
		h.fanOut(n)
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("encode change notice failed", zap.Error(err))
		return
	}

	if err := h.rdb.Publish(ctx, changeChannel, payload).Err(); err != nil {
		h.logger.Error("publish change notice failed",
			zap.String("table", n.Table),
			zap.Error(err),
		)
	}
}

// Run consumes the Redis channel and fans notices out to local subscribers
// until the context is cancelled. It is a no-op without Redis.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		<-ctx.Done()
		return
	}

	pubsub := h.rdb.Subscribe(ctx, changeChannel)
	defer pubsub.Close()

	h.logger.Info("change feed started", zap.String("channel", changeChannel))

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("change feed stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				h.logger.Warn("change feed channel closed")
				return
			}

			var n ChangeNotice
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				h.logger.Error("decode change notice failed", zap.Error(err))
				continue
			}
			h.fanOut(n)
		}
	}
}

// Subscribe registers a client. The returned cancel func must be called when
// the client disconnects.
func (h *Hub) Subscribe() (<-chan ChangeNotice, func()) {
	ch := make(chan ChangeNotice, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) fanOut(n ChangeNotice) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- n:
		default:
			// full buffer: drop for this subscriber
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
