package events

import (
	"context"
	"sync"
	"time"

	"pazaryeri-kar/internal/logger"

	"go.uber.org/zap"
)

// Change bir depo anahtarının değiştiği bildirimi
type Change struct {
	Key    string    `json:"key"`
	Origin string    `json:"origin"` // Değişikliği yapan örneğin kimliği, yoklamada "poll"
	At     time.Time `json:"at"`
}

// PollOrigin yoklamayla fark edilen değişikliklerin kaynağı
const PollOrigin = "poll"

type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// Broker süreç içi yayın/abonelik. Yavaş abonenin kanalı doluysa bildirim ona düşürülür.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]chan Change
	next   int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Change)}
}

func (b *Broker) Publish(_ context.Context, c Change) error {
	if c.At.IsZero() {
		c.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- c:
		default:
			logger.Warn("Abone kanalı dolu, bildirim atlandı", zap.Int("abone", id), zap.String("key", c.Key))
		}
	}
	return nil
}

// Subscribe yeni abone kanalı ve aboneliği bitiren fonksiyon döndürür
func (b *Broker) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Close tüm abone kanallarını kapatır
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
