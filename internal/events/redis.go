package events

import (
	"context"
	"encoding/json"
	"fmt"

	"pazaryeri-kar/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge yerel değişiklikleri Redis kanalına yayar, diğer örneklerden gelenleri yerel broker'a aktarır
type RedisBridge struct {
	client  *redis.Client
	channel string
	local   *Broker
	origin  string
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL çözülemedi: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisBridge(client *redis.Client, channel string, local *Broker, origin string) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, local: local, origin: origin}
}

// Publish önce yerel abonelere, sonra Redis'e yayınlar. Redis hatası yerel teslimi etkilemez.
func (r *RedisBridge) Publish(ctx context.Context, c Change) error {
	_ = r.local.Publish(ctx, c)

	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("değişiklik kodlanamadı: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis yayını başarısız: %w", err)
	}
	return nil
}

// Run ctx iptal edilene kadar kanalı dinler
func (r *RedisBridge) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis aboneliği kurulamadı: %w", err)
	}
	logger.Info("Redis değişiklik kanalı dinleniyor", zap.String("kanal", r.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handle(ctx, msg.Payload)
		}
	}
}

// handle kendi yayınladığımız mesajları atlar, diğerlerini yerelde yayınlar
func (r *RedisBridge) handle(ctx context.Context, payload string) {
	var c Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		logger.Warn("Redis mesajı çözülemedi", zap.Error(err))
		return
	}
	if c.Origin == r.origin {
		return
	}
	_ = r.local.Publish(ctx, c)
}
