package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/report"
	"pazaryeri-kar/internal/store"

	"github.com/gofiber/fiber/v2"
)

const (
	orderFileBase = "kar_analizi_siparis_bazli"
	lineFileBase  = "kar_analizi_urun_bazli"
	allFileBase   = "kar_analizi"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// now testlerde sabitlenebilsin diye değişken
var now = time.Now

func filteredOrders(c *fiber.Ctx, s *store.Store) ([]models.Order, error) {
	f, err := report.ParseFilter(c.Query("filter"))
	if err != nil {
		return nil, err
	}
	_, orders := report.ComputeOrders(s)
	return report.Apply(orders, f, c.Query("stockCode")), nil
}

func send(c *fiber.Ctx, base, format string, tables ...Table) error {
	var buf bytes.Buffer
	contentType := contentTypeXLSX

	switch format {
	case FormatXLSX:
		if err := WriteXLSX(&buf, tables...); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}
	case FormatCSV:
		if len(tables) != 1 {
			return fiber.NewError(fiber.StatusBadRequest, "CSV tek tablo için kullanılabilir")
		}
		// Excel'in Türkçe karakterleri doğru açması için BOM
		buf.WriteString("\ufeff")
		if err := WriteCSV(&buf, tables[0]); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV dosyası oluşturulamadı")
		}
		contentType = contentTypeCSV
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format 'xlsx' veya 'csv' olmalı")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, FileName(base, now(), format)))
	return c.Send(buf.Bytes())
}

func formatParam(c *fiber.Ctx) string {
	return strings.ToLower(c.Query("format", FormatXLSX))
}

// GET /api/export/orders?format=xlsx|csv
func OrdersHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := filteredOrders(c, s)
		if err != nil {
			return err
		}
		return send(c, orderFileBase, formatParam(c), OrderTable(orders))
	}
}

// GET /api/export/lines?format=xlsx|csv
func LinesHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := filteredOrders(c, s)
		if err != nil {
			return err
		}
		return send(c, lineFileBase, formatParam(c), LineTable(orders))
	}
}

// GET /api/export/all (iki sayfalı xlsx)
func AllHandler(s *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orders, err := filteredOrders(c, s)
		if err != nil {
			return err
		}
		return send(c, allFileBase, FormatXLSX, OrderTable(orders), LineTable(orders))
	}
}
