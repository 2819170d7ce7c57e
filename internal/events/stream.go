package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"pazaryeri-kar/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const heartbeatInterval = 15 * time.Second

// StreamHandler değişiklikleri server-sent events olarak akıtır
// GET /api/events
func StreamHandler(b *Broker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		ch, cancel := b.Subscribe(32)
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer cancel()
			ticker := time.NewTicker(heartbeatInterval)
			defer ticker.Stop()

			if err := writeEvents(w, ch, ticker.C); err != nil {
				logger.Debug("SSE istemcisi ayrıldı", zap.Error(err))
			}
		}))
		return nil
	}
}

// writeEvents kanal kapanana veya yazma hatası olana kadar olayları yazar
func writeEvents(w *bufio.Writer, ch <-chan Change, heartbeat <-chan time.Time) error {
	if _, err := fmt.Fprint(w, "retry: 2000\n\n"); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(c)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload); err != nil {
				return err
			}
		case <-heartbeat:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
}
