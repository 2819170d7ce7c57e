package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"pazaryeri-kar/internal/analysis"
	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func scenarioOrders() []models.Order {
	products := []models.Product{{StockCode: "X1", UnitCostUSD: 2.0}}
	lines := []models.OrderLine{
		{OrderNumber: "O1", StockCode: "X1", ProductName: "Kupa", Quantity: 3, Revenue: 300.0},
		{OrderNumber: "O2", StockCode: "CAM-1", Quantity: 1, Revenue: 100.0, CommissionRate: 10},
	}
	return analysis.Aggregate(platform.Trendyol, lines, products, 30.0)
}

func TestOrderTable(t *testing.T) {
	tbl := OrderTable(scenarioOrders())

	assert.Equal(t, OrderColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 2)

	row := tbl.Rows[0]
	assert.Equal(t, "O1", row[0])
	assert.Equal(t, 300.0, row[1])
	assert.Equal(t, 180.0, row[2])
	assert.Equal(t, 75.0, row[3])
	assert.Equal(t, 8.38, row[4])
	assert.Equal(t, 7.5, row[5])
	assert.Equal(t, 2.5, row[6])
	assert.Equal(t, 26.62, row[8])
	assert.Equal(t, 8.87, row[9])
	assert.Equal(t, 3, row[10])
	assert.Equal(t, 1, row[11])
	assert.Equal(t, "Evet", row[12])
	assert.Equal(t, "Hayır", tbl.Rows[1][12])
}

func TestLineTable(t *testing.T) {
	tbl := LineTable(scenarioOrders())

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []any{"O1", "X1", "Kupa", 3, 300.0, 60.0, 7.5, "Hayır", 0.0, "Evet"}, tbl.Rows[0])
	assert.Equal(t, []any{"O2", "CAM-1", "N/A", 1, 100.0, 0.0, 10.0, "Evet", 10.0, "Hayır"}, tbl.Rows[1])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, LineTable(scenarioOrders())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(LineColumns, ","), lines[0])
	assert.Equal(t, "O1,X1,Kupa,3,300.00,60.00,7.50,Hayır,0.00,Evet", lines[1])
}

func TestWriteXLSX(t *testing.T) {
	orders := scenarioOrders()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, OrderTable(orders), LineTable(orders)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sipariş Bazlı", "Ürün Bazlı"}, f.GetSheetList())

	rows, err := f.GetRows("Sipariş Bazlı")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, OrderColumns, rows[0])
	assert.Equal(t, "O1", rows[1][0])
	assert.Equal(t, "26.62", rows[1][8])

	lineRows, err := f.GetRows("Ürün Bazlı")
	require.NoError(t, err)
	assert.Len(t, lineRows, 3)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "kar_analizi_siparis_bazli_2024-03-05.csv", FileName("kar_analizi_siparis_bazli", now, FormatCSV))
}
