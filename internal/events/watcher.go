package events

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"pazaryeri-kar/internal/logger"
	"pazaryeri-kar/internal/storage"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Watcher depodaki anahtarları sabit aralıkla yoklar ve değişenleri yayınlar.
// Aynı Postgres tablosuna başka bir örnek yazdığında bildirim almanın yedek yoludur.
type Watcher struct {
	kv       storage.KV
	pub      Publisher
	interval time.Duration
	prefixes []string

	mu       sync.Mutex
	last     map[string]uint64
	baseline bool
}

func NewWatcher(kv storage.KV, pub Publisher, interval time.Duration, prefixes ...string) *Watcher {
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	return &Watcher{
		kv:       kv,
		pub:      pub,
		interval: interval,
		prefixes: prefixes,
		last:     make(map[string]uint64),
	}
}

// Poll anlık görüntüyü öncekiyle karşılaştırır. İlk çağrı sadece başlangıç durumunu kaydeder.
func (w *Watcher) Poll(ctx context.Context) ([]string, error) {
	current := make(map[string]uint64)
	for _, prefix := range w.prefixes {
		keys, err := w.kv.Keys(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			v, err := w.kv.Get(ctx, k)
			if err != nil {
				continue
			}
			current[k] = hash(v)
		}
	}

	w.mu.Lock()
	changed := make([]string, 0)
	if w.baseline {
		for k, h := range current {
			if old, ok := w.last[k]; !ok || old != h {
				changed = append(changed, k)
			}
		}
		for k := range w.last {
			if _, ok := current[k]; !ok {
				changed = append(changed, k)
			}
		}
	}
	w.last = current
	w.baseline = true
	w.mu.Unlock()
	sort.Strings(changed)

	now := time.Now()
	for _, k := range changed {
		if err := w.pub.Publish(ctx, Change{Key: k, Origin: PollOrigin, At: now}); err != nil {
			logger.Warn("Yoklama bildirimi yayınlanamadı", zap.String("key", k), zap.Error(err))
		}
	}
	return changed, nil
}

// Start yoklamayı gocron ile arka planda başlatır, ctx iptal edilince durur
func (w *Watcher) Start(ctx context.Context) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(w.interval).Do(func() {
		if _, err := w.Poll(ctx); err != nil {
			logger.Error("Depo yoklaması başarısız", err)
		}
	})
	if err != nil {
		return nil, err
	}

	s.StartAsync()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return s, nil
}

func hash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
