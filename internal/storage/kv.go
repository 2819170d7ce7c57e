package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound anahtar depoda yok. Çağıranlar bunu boş koleksiyon veya varsayılan değer olarak yorumlar.
var ErrKeyNotFound = errors.New("anahtar bulunamadı")

// KV JSON blob'larını string anahtarla saklayan depo
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Keys önekle başlayan anahtarları sıralı döndürür, boş önek tüm anahtarlar demektir
	Keys(ctx context.Context, prefix string) ([]string, error)
}
