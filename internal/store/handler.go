package store

import (
	"fmt"
	"strings"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/ingest"
	"pazaryeri-kar/internal/logger"
	"pazaryeri-kar/internal/metrics"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/platform"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

type PlatformResponse struct {
	Platform    platform.Platform   `json:"platform"`
	DisplayName string              `json:"display_name"`
	Available   []platform.Platform `json:"available"`
}

type SwitchPlatformRequest struct {
	Platform string `json:"platform" validate:"required"`
}

type ProductMatch struct {
	StockCode string `json:"stockCode" validate:"required"`
	Name      string `json:"name"`
}

type UpdateProductRequest struct {
	Match  ProductMatch   `json:"match"`
	Record models.Product `json:"record"`
}

// OrderLineMatch barkod veya sipariş numarasından en az biri gerekli
type OrderLineMatch struct {
	Barcode       string `json:"barcode" validate:"required_without=OrderNumber"`
	OrderNumber   string `json:"orderNumber" validate:"required_without=Barcode"`
	ItemNumber    string `json:"itemNumber"`
	PackageNumber string `json:"packageNumber"`
	ProductName   string `json:"productName"`
}

func (m OrderLineMatch) line() models.OrderLine {
	return models.OrderLine{
		Barcode:       m.Barcode,
		OrderNumber:   m.OrderNumber,
		ItemNumber:    m.ItemNumber,
		PackageNumber: m.PackageNumber,
		ProductName:   m.ProductName,
	}
}

type UpdateOrderLineRequest struct {
	Match  OrderLineMatch   `json:"match"`
	Record models.OrderLine `json:"record"`
}

// ExchangeRateRequest rate sayı veya "34,25" gibi metin olabilir
type ExchangeRateRequest struct {
	Rate any `json:"rate" validate:"required"`
}

type ExchangeRateResponse struct {
	Platform platform.Platform `json:"platform"`
	Rate     float64           `json:"rate"`
}

type UploadResponse struct {
	Platform platform.Platform `json:"platform"`
	Rows     int               `json:"rows"`
	Total    int               `json:"total"`
}

type AffectedResponse struct {
	Affected int `json:"affected"`
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.Detail(apperrors.ErrInvalidInput, "%v", err)
	}
	return nil
}

// GET /api/platform
func GetPlatformHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := s.Platform()
		return c.JSON(PlatformResponse{Platform: p, DisplayName: p.DisplayName(), Available: platform.All()})
	}
}

// POST /api/platform
func SwitchPlatformHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SwitchPlatformRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		p, err := platform.Parse(body.Platform)
		if err != nil {
			return err
		}
		if err := s.SwitchPlatform(c.UserContext(), p); err != nil {
			return err
		}
		return c.JSON(PlatformResponse{Platform: p, DisplayName: p.DisplayName(), Available: platform.All()})
	}
}

// DELETE /api/platform/data
func ClearPlatformHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.ClearPlatform(c.UserContext()); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// readUpload multipart "file" alanındaki XLSX/CSV dosyasını satırlara çevirir
func readUpload(c *fiber.Ctx) ([]ingest.Row, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
	}
	defer file.Close()

	rows, err := ingest.Read(fileHeader.Filename, file)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return rows, nil
}

// POST /api/products/upload
func UploadProductsHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := readUpload(c)
		if err != nil {
			return err
		}

		p, n, err := s.ImportProducts(c.UserContext(), rows)
		if err != nil {
			return err
		}
		metrics.RowsIngested.WithLabelValues(string(p), "product").Add(float64(len(rows)))
		return c.JSON(UploadResponse{Platform: p, Rows: n, Total: n})
	}
}

// GET /api/products
func ListProductsHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products := s.Products()
		if products == nil {
			products = []models.Product{}
		}
		return c.JSON(products)
	}
}

// PUT /api/products
func UpdateProductHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateProductRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		n, err := s.UpdateProduct(c.UserContext(), models.Product{StockCode: body.Match.StockCode, Name: body.Match.Name}, body.Record)
		if err != nil {
			return err
		}
		return c.JSON(AffectedResponse{Affected: n})
	}
}

// DELETE /api/products
func DeleteProductHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductMatch
		if err := parseBody(c, &body); err != nil {
			return err
		}
		n, err := s.DeleteProduct(c.UserContext(), models.Product{StockCode: body.StockCode, Name: body.Name})
		if err != nil {
			return err
		}
		return c.JSON(AffectedResponse{Affected: n})
	}
}

// POST /api/orders/upload?mode=replace|append
func UploadOrdersHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := strings.ToLower(c.Query("mode", "replace"))
		if mode != "replace" && mode != "append" {
			return fiber.NewError(fiber.StatusBadRequest, "mode 'replace' veya 'append' olmalı")
		}

		rows, err := readUpload(c)
		if err != nil {
			return err
		}

		p, counts, err := s.ImportOrderLines(c.UserContext(), rows, mode == "append")
		if err != nil {
			return err
		}
		metrics.RowsIngested.WithLabelValues(string(p), "order_line").Add(float64(len(rows)))

		logger.Debug("Sipariş dosyası işlendi", zap.String("mod", mode), zap.Int("satir", counts.Written))
		return c.JSON(UploadResponse{Platform: p, Rows: counts.Written, Total: counts.Total})
	}
}

// GET /api/orders
func ListOrderLinesHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lines := s.OrderLines()
		if lines == nil {
			lines = []models.OrderLine{}
		}
		return c.JSON(lines)
	}
}

// PUT /api/orders
func UpdateOrderLineHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateOrderLineRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		if body.Record.Quantity < 1 {
			body.Record.Quantity = 1
		}
		n, err := s.UpdateOrderLine(c.UserContext(), body.Match.line(), body.Record)
		if err != nil {
			return err
		}
		return c.JSON(AffectedResponse{Affected: n})
	}
}

// DELETE /api/orders
func DeleteOrderLineHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderLineMatch
		if err := parseBody(c, &body); err != nil {
			return err
		}
		n, err := s.DeleteOrderLine(c.UserContext(), body.line())
		if err != nil {
			return err
		}
		return c.JSON(AffectedResponse{Affected: n})
	}
}

// GET /api/exchange-rate
func GetExchangeRateHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := s.Snapshot()
		return c.JSON(ExchangeRateResponse{Platform: snap.Platform, Rate: snap.ExchangeRate})
	}
}

// PUT /api/exchange-rate
func SetExchangeRateHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExchangeRateRequest
		if err := parseBody(c, &body); err != nil {
			return err
		}
		v, err := s.SetExchangeRate(c.UserContext(), fmt.Sprint(body.Rate))
		if err != nil {
			return err
		}
		return c.JSON(ExchangeRateResponse{Platform: s.Platform(), Rate: v})
	}
}
