package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pazaryeri-kar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Entry tek bir değişiklik kaydı. Before/After JSON'a çevrilir.
type Entry struct {
	CorrelationID string
	Platform      string
	EntityType    string
	EntityKey     string
	Action        models.AuditAction
	Description   string
	Before        any
	After         any
}

type Query struct {
	Platform   string
	EntityType string
	Limit      int
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
	List(ctx context.Context, q Query) ([]models.AuditLog, error)
}

// NewCorrelationID aynı işlemden doğan logları gruplamak için
func NewCorrelationID() string {
	return uuid.NewString()
}

func toLog(e Entry) models.AuditLog {
	// jsonb kolonu boş string kabul etmez, "null" yazılır
	beforeStr := "null"
	afterStr := "null"
	if e.Before != nil {
		if b, err := json.Marshal(e.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if e.After != nil {
		if b, err := json.Marshal(e.After); err == nil {
			afterStr = string(b)
		}
	}

	corr := e.CorrelationID
	if corr == "" {
		corr = NewCorrelationID()
	}

	return models.AuditLog{
		CorrelationID: corr,
		Platform:      e.Platform,
		EntityType:    e.EntityType,
		EntityKey:     truncate(e.EntityKey, 255),
		Action:        e.Action,
		Description:   truncate(e.Description, 255),
		BeforeData:    beforeStr,
		AfterData:     afterStr,
	}
}

func normalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// GormRecorder audit loglarını Postgres'e yazar
type GormRecorder struct {
	db *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

func (g *GormRecorder) Record(ctx context.Context, e Entry) error {
	log := toLog(e)
	if err := g.db.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func (g *GormRecorder) List(ctx context.Context, q Query) ([]models.AuditLog, error) {
	dbq := g.db.WithContext(ctx).Model(&models.AuditLog{})
	if q.Platform != "" {
		dbq = dbq.Where("platform = ?", q.Platform)
	}
	if q.EntityType != "" {
		dbq = dbq.Where("entity_type = ?", q.EntityType)
	}

	var logs []models.AuditLog
	if err := dbq.Order("created_at DESC").Limit(normalizeLimit(q.Limit)).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit loglar listelenemedi: %w", err)
	}
	return logs, nil
}

// MemoryRecorder bellek deposuyla çalışırken kullanılan sınırlı audit kaydı
type MemoryRecorder struct {
	mu     sync.RWMutex
	logs   []models.AuditLog
	nextID uint
	cap    int
}

func NewMemoryRecorder(capacity int) *MemoryRecorder {
	if capacity <= 0 {
		capacity = MaxLimit
	}
	return &MemoryRecorder{cap: capacity}
}

func (m *MemoryRecorder) Record(_ context.Context, e Entry) error {
	log := toLog(e)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	log.ID = m.nextID
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, log)
	if len(m.logs) > m.cap {
		m.logs = m.logs[len(m.logs)-m.cap:]
	}
	return nil
}

// List en yeniden eskiye döner
func (m *MemoryRecorder) List(_ context.Context, q Query) ([]models.AuditLog, error) {
	limit := normalizeLimit(q.Limit)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.AuditLog, 0)
	for i := len(m.logs) - 1; i >= 0 && len(out) < limit; i-- {
		l := m.logs[i]
		if q.Platform != "" && l.Platform != q.Platform {
			continue
		}
		if q.EntityType != "" && l.EntityType != q.EntityType {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
