package events

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"pazaryeri-kar/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	ch1, cancel1 := b.Subscribe(4)
	ch2, cancel2 := b.Subscribe(4)
	defer cancel2()

	require.NoError(t, b.Publish(context.Background(), Change{Key: "tr_urunler", Origin: "a"}))

	c1 := <-ch1
	c2 := <-ch2
	assert.Equal(t, "tr_urunler", c1.Key)
	assert.False(t, c1.At.IsZero())
	assert.Equal(t, c1, c2)

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)

	require.NoError(t, b.Publish(context.Background(), Change{Key: "tr_siparisler"}))
	assert.Equal(t, "tr_siparisler", (<-ch2).Key)
}

func TestBrokerDropsWhenSubscriberFull(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(1)
	defer cancel()

	require.NoError(t, b.Publish(context.Background(), Change{Key: "a"}))
	require.NoError(t, b.Publish(context.Background(), Change{Key: "b"}))

	assert.Equal(t, "a", (<-ch).Key)
	select {
	case c := <-ch:
		t.Fatalf("beklenmeyen bildirim: %v", c)
	default:
	}
}

func TestBrokerClose(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(1)
	b.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	late, _ := b.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}

func TestRedisBridgeHandleSkipsOwnOrigin(t *testing.T) {
	local := NewBroker()
	ch, cancel := local.Subscribe(4)
	defer cancel()

	bridge := NewRedisBridge(nil, "kanal", local, "ben")

	own, _ := json.Marshal(Change{Key: "tr_urunler", Origin: "ben"})
	other, _ := json.Marshal(Change{Key: "tr_siparisler", Origin: "diger"})

	bridge.handle(context.Background(), string(own))
	bridge.handle(context.Background(), "bozuk json")
	bridge.handle(context.Background(), string(other))

	c := <-ch
	assert.Equal(t, "tr_siparisler", c.Key)
	assert.Equal(t, "diger", c.Origin)
	select {
	case extra := <-ch:
		t.Fatalf("beklenmeyen bildirim: %v", extra)
	default:
	}
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient("http://yanlis")
	assert.Error(t, err)

	c, err := NewRedisClient("redis://localhost:6379/0")
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestWatcherPoll(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(ctx, "tr_urunler", "[]"))
	require.NoError(t, kv.Set(ctx, "hb_urunler", "[]"))

	b := NewBroker()
	ch, cancel := b.Subscribe(8)
	defer cancel()

	w := NewWatcher(kv, b, time.Second, "tr_")

	changed, err := w.Poll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, kv.Set(ctx, "tr_urunler", `[{"stockCode":"X1"}]`))
	require.NoError(t, kv.Set(ctx, "tr_siparisler", "[]"))
	require.NoError(t, kv.Set(ctx, "hb_urunler", `[{}]`))

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tr_siparisler", "tr_urunler"}, changed)
	assert.Equal(t, PollOrigin, (<-ch).Origin)
	<-ch

	require.NoError(t, kv.Remove(ctx, "tr_siparisler"))
	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tr_siparisler"}, changed)

	changed, err = w.Poll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changed)
}

func TestWatcherStartStopsOnCancel(t *testing.T) {
	kv := storage.NewMemory()
	b := NewBroker()
	ch, unsubscribe := b.Subscribe(8)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(kv, b, time.Second, "tr_")
	s, err := w.Start(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.baseline
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, kv.Set(context.Background(), "tr_urunler", "[]"))

	select {
	case c := <-ch:
		assert.Equal(t, "tr_urunler", c.Key)
	case <-time.After(5 * time.Second):
		t.Fatal("yoklama bildirimi gelmedi")
	}

	cancel()
	require.Eventually(t, func() bool { return !s.IsRunning() }, 3*time.Second, 20*time.Millisecond)
}

func TestWriteEvents(t *testing.T) {
	ch := make(chan Change, 2)
	hb := make(chan time.Time, 1)
	ch <- Change{Key: "tr_urunler", Origin: "a", At: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}
	hb <- time.Now()

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	done := make(chan error, 1)
	go func() { done <- writeEvents(w, ch, hb) }()

	require.Eventually(t, func() bool { return len(hb) == 0 && len(ch) == 0 }, time.Second, 5*time.Millisecond)
	close(ch)
	require.NoError(t, <-done)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "retry: 2000\n\n"))
	assert.Contains(t, out, `event: change`+"\n"+`data: {"key":"tr_urunler","origin":"a","at":"2024-03-05T00:00:00Z"}`+"\n\n")
	assert.Contains(t, out, ": ping\n\n")
}
