package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Gorm kv_entries tablosunu kullanan Postgres deposu
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) Get(ctx context.Context, key string) (string, error) {
	var values []string
	if err := g.db.WithContext(ctx).Raw("SELECT value FROM kv_entries WHERE key = ?", key).Scan(&values).Error; err != nil {
		return "", fmt.Errorf("anahtar okunamadı (%s): %w", key, err)
	}
	if len(values) == 0 {
		return "", ErrKeyNotFound
	}
	return values[0], nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	err := g.db.WithContext(ctx).Exec(
		"INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at",
		key, value, time.Now(),
	).Error
	if err != nil {
		return fmt.Errorf("anahtar yazılamadı (%s): %w", key, err)
	}
	return nil
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Exec("DELETE FROM kv_entries WHERE key = ?", key).Error; err != nil {
		return fmt.Errorf("anahtar silinemedi (%s): %w", key, err)
	}
	return nil
}

func (g *Gorm) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).
		Raw("SELECT key FROM kv_entries WHERE key LIKE ? ORDER BY key", escapeLike(prefix)+"%").
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("anahtarlar listelenemedi: %w", err)
	}
	return keys, nil
}

// escapeLike "tr_" gibi öneklerdeki "_" ve "%" karakterlerini LIKE için kaçışlar
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
