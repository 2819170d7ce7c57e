package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/audit"
	"pazaryeri-kar/internal/events"
	"pazaryeri-kar/internal/logger"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
	"pazaryeri-kar/internal/platform"
	"pazaryeri-kar/internal/storage"

	"go.uber.org/zap"
)

// Store aktif platformun ürün ve sipariş satırı koleksiyonlarını ve dolar kurunu tutar.
// Her değişiklik tüm koleksiyonu depoya yazar ve bir değişiklik bildirimi yayınlar.
type Store struct {
	kv     storage.KV
	pub    events.Publisher
	audit  audit.Recorder
	origin string

	mu       sync.RWMutex
	platform platform.Platform
	products []models.Product
	lines    []models.OrderLine
	rate     float64
}

// Snapshot aynı andan alınmış tutarlı bir kopya
type Snapshot struct {
	Platform     platform.Platform
	Products     []models.Product
	OrderLines   []models.OrderLine
	ExchangeRate float64
}

// New audit nil olabilir
func New(kv storage.KV, pub events.Publisher, rec audit.Recorder, origin string) *Store {
	return &Store{
		kv:       kv,
		pub:      pub,
		audit:    rec,
		origin:   origin,
		platform: platform.Trendyol,
		rate:     platform.Trendyol.Schedule().DefaultExchangeRate,
	}
}

func (s *Store) Origin() string {
	return s.origin
}

// Load kayıtlı aktif platformu okur (yoksa def) ve verilerini belleğe alır
func (s *Store) Load(ctx context.Context, def platform.Platform) error {
	p := def
	v, err := s.kv.Get(ctx, platform.ActiveKey)
	switch {
	case err == nil:
		if parsed, perr := platform.Parse(v); perr == nil {
			p = parsed
		} else {
			logger.Warn("Kayıtlı aktif platform geçersiz, varsayılan kullanılıyor", zap.String("deger", v))
		}
	case !errors.Is(err, storage.ErrKeyNotFound):
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if !p.Valid() {
		p = platform.Trendyol
	}

	return s.loadPlatform(ctx, p)
}

// Reload depodaki aktif platformu ve verilerini yeniden okur
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx, s.Platform())
}

func (s *Store) loadPlatform(ctx context.Context, p platform.Platform) error {
	keys := p.Keys()

	var products []models.Product
	if err := s.readJSON(ctx, keys.Products, &products); err != nil {
		return err
	}
	var lines []models.OrderLine
	if err := s.readJSON(ctx, keys.OrderLines, &lines); err != nil {
		return err
	}
	rate, err := s.readRate(ctx, p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.platform = p
	s.products = products
	s.lines = lines
	s.rate = rate
	s.mu.Unlock()

	logger.Info("Platform verileri yüklendi",
		zap.String("platform", string(p)),
		zap.Int("urun", len(products)),
		zap.Int("siparis_satiri", len(lines)),
		zap.Float64("kur", rate),
	)
	return nil
}

// readJSON eksik anahtarı boş koleksiyon sayar, bozuk veriyi loglayıp boş geçer
func (s *Store) readJSON(ctx context.Context, key string, dst any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Warn("Kayıtlı veri çözülemedi, boş kabul ediliyor", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *Store) readRate(ctx context.Context, p platform.Platform) (float64, error) {
	def := p.Schedule().DefaultExchangeRate

	candidates := []string{p.Keys().ExchangeRate}
	if p == platform.Trendyol {
		candidates = append(candidates, platform.LegacyRateKey)
	}

	for _, key := range candidates {
		raw, err := s.kv.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return 0, apperrors.Wrap(apperrors.ErrStorage, err)
		}
		if v, ok := parse.Rate(raw); ok {
			return v, nil
		}
		logger.Warn("Kayıtlı kur geçersiz", zap.String("key", key), zap.String("deger", raw))
	}
	return def, nil
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("%s kodlanamadı: %w", key, err))
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return nil
}

// changed bir değişiklik tamamlandıktan sonra kilit dışında çağrılır
func (s *Store) changed(ctx context.Context, p platform.Platform, op string, entry audit.Entry, keys ...string) {
	metrics.StoreMutations.WithLabelValues(string(p), op).Inc()

	for _, k := range keys {
		if err := s.pub.Publish(ctx, events.Change{Key: k, Origin: s.origin}); err != nil {
			logger.Warn("Değişiklik bildirimi yayınlanamadı", zap.String("key", k), zap.Error(err))
		}
	}

	if s.audit == nil {
		return
	}
	entry.Platform = string(p)
	if err := s.audit.Record(ctx, entry); err != nil {
		logger.Error("Audit log yazılamadı", err, zap.String("islem", op))
	}
}

func (s *Store) Platform() platform.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.platform
}

func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *Store) OrderLines() []models.OrderLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

func (s *Store) ExchangeRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Platform:     s.platform,
		Products:     slices.Clone(s.products),
		OrderLines:   slices.Clone(s.lines),
		ExchangeRate: s.rate,
	}
}

// UpsertProducts ürün koleksiyonunu tamamen değiştirir (toplu yükleme)
func (s *Store) UpsertProducts(ctx context.Context, products []models.Product) error {
	_, _, err := s.replaceProducts(ctx, func(platform.Platform) []models.Product { return products })
	return err
}

// ImportProducts ham satırları aktif platformun kolonlarıyla çevirip kaydeder.
// Çeviri ve yazma aynı kilit altında, arada platform değişemez.
func (s *Store) ImportProducts(ctx context.Context, rows []map[string]string) (platform.Platform, int, error) {
	p, products, err := s.replaceProducts(ctx, func(p platform.Platform) []models.Product {
		return platform.NewAdapter(p).Products(rows)
	})
	return p, len(products), err
}

func (s *Store) replaceProducts(ctx context.Context, build func(platform.Platform) []models.Product) (platform.Platform, []models.Product, error) {
	s.mu.Lock()
	p := s.platform
	products := build(p)
	if products == nil {
		products = []models.Product{}
	}
	key := p.Keys().Products
	before := len(s.products)
	if err := s.writeJSON(ctx, key, products); err != nil {
		s.mu.Unlock()
		return p, nil, err
	}
	s.products = slices.Clone(products)
	s.mu.Unlock()

	logger.Info("Ürünler yüklendi", zap.String("platform", string(p)), zap.Int("adet", len(products)))
	s.changed(ctx, p, "upsert_products", audit.Entry{
		EntityType:  "product",
		Action:      models.AuditActionReplace,
		Description: fmt.Sprintf("Ürün listesi yenilendi: %d → %d kayıt", before, len(products)),
	}, key)
	return p, products, nil
}

// UpdateProduct eşleşen ürün(ler)i updated ile tamamen değiştirir, etkilenen kayıt sayısını döndürür
func (s *Store) UpdateProduct(ctx context.Context, match, updated models.Product) (int, error) {
	s.mu.Lock()
	p := s.platform
	key := p.Keys().Products

	idx := MatchProducts(s.products, match)
	if len(idx) == 0 {
		s.mu.Unlock()
		return 0, apperrors.Detail(apperrors.ErrNotFound, "ürün %q", match.StockCode)
	}

	next := slices.Clone(s.products)
	before := make([]models.Product, 0, len(idx))
	for _, i := range idx {
		before = append(before, next[i])
		next[i] = updated
	}
	if err := s.writeJSON(ctx, key, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.products = next
	s.mu.Unlock()

	s.changed(ctx, p, "update_product", audit.Entry{
		EntityType:  "product",
		EntityKey:   match.StockCode,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("Ürün güncellendi: %s", match.StockCode),
		Before:      before,
		After:       updated,
	}, key)
	return len(idx), nil
}

func (s *Store) DeleteProduct(ctx context.Context, match models.Product) (int, error) {
	s.mu.Lock()
	p := s.platform
	key := p.Keys().Products

	idx := MatchProducts(s.products, match)
	if len(idx) == 0 {
		s.mu.Unlock()
		return 0, apperrors.Detail(apperrors.ErrNotFound, "ürün %q", match.StockCode)
	}

	next, removed := without(s.products, idx)
	if err := s.writeJSON(ctx, key, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.products = next
	s.mu.Unlock()

	s.changed(ctx, p, "delete_product", audit.Entry{
		EntityType:  "product",
		EntityKey:   match.StockCode,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Ürün silindi: %s", match.StockCode),
		Before:      removed,
	}, key)
	return len(removed), nil
}

// UpsertOrderLines sipariş satırlarını tamamen değiştirir
func (s *Store) UpsertOrderLines(ctx context.Context, lines []models.OrderLine) error {
	_, _, err := s.putLines(ctx, fixedLines(lines), false)
	return err
}

// AppendOrderLines yeni satırları mevcutların sonuna ekler
func (s *Store) AppendOrderLines(ctx context.Context, lines []models.OrderLine) error {
	_, _, err := s.putLines(ctx, fixedLines(lines), true)
	return err
}

// ImportOrderLines ham satırları aktif platformun kolonlarıyla çevirip yazar,
// platformu, yazılan ve toplam satır sayısını döndürür
func (s *Store) ImportOrderLines(ctx context.Context, rows []map[string]string, appendMode bool) (platform.Platform, LineCounts, error) {
	return s.putLines(ctx, func(p platform.Platform) []models.OrderLine {
		return platform.NewAdapter(p).OrderLines(rows)
	}, appendMode)
}

type LineCounts struct {
	Written int
	Total   int
}

func fixedLines(lines []models.OrderLine) func(platform.Platform) []models.OrderLine {
	return func(platform.Platform) []models.OrderLine { return lines }
}

func (s *Store) putLines(ctx context.Context, build func(platform.Platform) []models.OrderLine, appendMode bool) (platform.Platform, LineCounts, error) {
	s.mu.Lock()
	p := s.platform
	lines := build(p)
	key := p.Keys().OrderLines
	before := len(s.lines)

	next := make([]models.OrderLine, 0, len(lines)+before)
	if appendMode {
		next = append(next, s.lines...)
	}
	next = append(next, lines...)

	if err := s.writeJSON(ctx, key, next); err != nil {
		s.mu.Unlock()
		return p, LineCounts{}, err
	}
	s.lines = next
	s.mu.Unlock()

	op, action := "upsert_order_lines", models.AuditActionReplace
	if appendMode {
		op, action = "append_order_lines", models.AuditActionAppend
	}
	logger.Info("Sipariş satırları kaydedildi",
		zap.String("platform", string(p)),
		zap.String("islem", op),
		zap.Int("yeni", len(lines)),
		zap.Int("toplam", len(next)),
	)
	s.changed(ctx, p, op, audit.Entry{
		EntityType:  "order_line",
		Action:      action,
		Description: fmt.Sprintf("Sipariş satırları: %d → %d kayıt", before, len(next)),
	}, key)
	return p, LineCounts{Written: len(lines), Total: len(next)}, nil
}

// UpdateOrderLine LineKeyStrategies sırasıyla eşleşen satır(lar)ı updated ile değiştirir
func (s *Store) UpdateOrderLine(ctx context.Context, match, updated models.OrderLine) (int, error) {
	s.mu.Lock()
	p := s.platform
	key := p.Keys().OrderLines

	idx, strategy := MatchLines(s.lines, match)
	if len(idx) == 0 {
		s.mu.Unlock()
		return 0, apperrors.Detail(apperrors.ErrNotFound, "sipariş satırı %q", match.OrderNumber)
	}

	next := slices.Clone(s.lines)
	before := make([]models.OrderLine, 0, len(idx))
	for _, i := range idx {
		before = append(before, next[i])
		next[i] = updated
	}
	if err := s.writeJSON(ctx, key, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.lines = next
	s.mu.Unlock()

	logger.Debug("Sipariş satırı güncellendi", zap.String("strateji", strategy), zap.Int("adet", len(idx)))
	s.changed(ctx, p, "update_order_line", audit.Entry{
		EntityType:  "order_line",
		EntityKey:   match.OrderNumber,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("Sipariş satırı güncellendi (%s)", strategy),
		Before:      before,
		After:       updated,
	}, key)
	return len(idx), nil
}

func (s *Store) DeleteOrderLine(ctx context.Context, match models.OrderLine) (int, error) {
	s.mu.Lock()
	p := s.platform
	key := p.Keys().OrderLines

	idx, strategy := MatchLines(s.lines, match)
	if len(idx) == 0 {
		s.mu.Unlock()
		return 0, apperrors.Detail(apperrors.ErrNotFound, "sipariş satırı %q", match.OrderNumber)
	}

	next, removed := without(s.lines, idx)
	if err := s.writeJSON(ctx, key, next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	s.lines = next
	s.mu.Unlock()

	s.changed(ctx, p, "delete_order_line", audit.Entry{
		EntityType:  "order_line",
		EntityKey:   match.OrderNumber,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Sipariş satırı silindi (%s)", strategy),
		Before:      removed,
	}, key)
	return len(removed), nil
}

// SetExchangeRate virgül veya nokta ondalıklı girdiyi kabul eder, sayı değilse ya da <= 0 ise reddeder
func (s *Store) SetExchangeRate(ctx context.Context, raw string) (float64, error) {
	v, ok := parse.Rate(raw)
	if !ok {
		return 0, apperrors.Detail(apperrors.ErrInvalidRate, "%q", raw)
	}

	s.mu.Lock()
	p := s.platform
	key := p.Keys().ExchangeRate
	before := s.rate
	if err := s.kv.Set(ctx, key, strconv.FormatFloat(v, 'f', -1, 64)); err != nil {
		s.mu.Unlock()
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	s.rate = v
	s.mu.Unlock()

	s.changed(ctx, p, "set_exchange_rate", audit.Entry{
		EntityType:  "exchange_rate",
		EntityKey:   key,
		Action:      models.AuditActionUpdate,
		Description: "Dolar kuru güncellendi",
		Before:      before,
		After:       v,
	}, key)
	return v, nil
}

// ClearPlatform aktif platformun tüm kayıtlarını siler, kur varsayılana döner
func (s *Store) ClearPlatform(ctx context.Context) error {
	s.mu.Lock()
	p := s.platform
	keys := p.Keys()
	removed := []string{keys.Products, keys.OrderLines, keys.ExchangeRate}
	for _, k := range removed {
		if err := s.kv.Remove(ctx, k); err != nil {
			s.mu.Unlock()
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}
	counts := map[string]int{"urun": len(s.products), "siparis_satiri": len(s.lines)}
	s.products = nil
	s.lines = nil
	s.rate = p.Schedule().DefaultExchangeRate
	s.mu.Unlock()

	logger.Info("Platform verileri temizlendi", zap.String("platform", string(p)))
	s.changed(ctx, p, "clear", audit.Entry{
		EntityType:  "platform",
		EntityKey:   string(p),
		Action:      models.AuditActionClear,
		Description: fmt.Sprintf("%s verileri temizlendi", p.DisplayName()),
		Before:      counts,
	}, removed...)
	return nil
}

// SwitchPlatform diğer platformun önekli tüm anahtarlarını siler (Hepsiburada'ya geçerken eski öneksiz
// anahtarları da), aktif platformu kaydeder ve yeni platformun verilerini yükler.
func (s *Store) SwitchPlatform(ctx context.Context, p platform.Platform) error {
	if !p.Valid() {
		return apperrors.Detail(apperrors.ErrUnknownPlatform, "%q", string(p))
	}
	from := s.Platform()
	if from == p {
		return nil
	}

	stale, err := s.kv.Keys(ctx, p.Other().Prefix())
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if p == platform.Hepsiburada {
		stale = append(stale, platform.LegacyKeys...)
	}
	for _, k := range stale {
		if err := s.kv.Remove(ctx, k); err != nil {
			return apperrors.Wrap(apperrors.ErrStorage, err)
		}
	}

	if err := s.kv.Set(ctx, platform.ActiveKey, string(p)); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if err := s.loadPlatform(ctx, p); err != nil {
		return err
	}

	logger.Info("Platform değiştirildi", zap.String("eski", string(from)), zap.String("yeni", string(p)), zap.Int("silinen_anahtar", len(stale)))
	s.changed(ctx, p, "switch_platform", audit.Entry{
		EntityType:  "platform",
		EntityKey:   platform.ActiveKey,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("Platform değişti: %s → %s", from.DisplayName(), p.DisplayName()),
		Before:      from,
		After:       p,
	}, append(stale, platform.ActiveKey)...)
	return nil
}

// Watch başka örneklerden gelen değişikliklerde depoyu yeniden okur. ch kapanınca veya ctx bitince döner.
func (s *Store) Watch(ctx context.Context, ch <-chan events.Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			if c.Origin == s.origin || !s.relevant(c.Key) {
				continue
			}
			// Art arda gelen bildirimleri tek yeniden okumada topla
			drain(ch)
			if err := s.Reload(ctx); err != nil {
				logger.Error("Depo yeniden okunamadı", err, zap.String("key", c.Key))
				continue
			}
			logger.Debug("Dış değişiklik sonrası veriler yenilendi", zap.String("key", c.Key), zap.String("kaynak", c.Origin))
		}
	}
}

func (s *Store) relevant(key string) bool {
	if key == platform.ActiveKey || key == platform.LegacyRateKey {
		return true
	}
	return strings.HasPrefix(key, s.Platform().Prefix())
}

func drain(ch <-chan events.Change) {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// without idx'teki (artan sıralı) elemanları çıkarır
func without[T any](items []T, idx []int) (kept, removed []T) {
	kept = make([]T, 0, len(items)-len(idx))
	removed = make([]T, 0, len(idx))
	j := 0
	for i, it := range items {
		if j < len(idx) && idx[j] == i {
			removed = append(removed, it)
			j++
			continue
		}
		kept = append(kept, it)
	}
	return kept, removed
}
