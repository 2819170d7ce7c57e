package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pazaryeri-kar/internal/apperrors"
	"pazaryeri-kar/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(s *Store) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.FiberErrorHandler})
	api := app.Group("/api")
	api.Get("/platform", GetPlatformHandler(s))
	api.Post("/platform", SwitchPlatformHandler(s))
	api.Delete("/platform/data", ClearPlatformHandler(s))
	api.Post("/products/upload", UploadProductsHandler(s))
	api.Get("/products", ListProductsHandler(s))
	api.Put("/products", UpdateProductHandler(s))
	api.Delete("/products", DeleteProductHandler(s))
	api.Post("/orders/upload", UploadOrdersHandler(s))
	api.Get("/orders", ListOrderLinesHandler(s))
	api.Put("/orders", UpdateOrderLineHandler(s))
	api.Delete("/orders", DeleteOrderLineHandler(s))
	api.Get("/exchange-rate", GetExchangeRateHandler(s))
	api.Put("/exchange-rate", SetExchangeRateHandler(s))
	return app
}

func uploadRequest(t *testing.T, url, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dst), string(body))
}

func TestUploadProductsAndOrders(t *testing.T) {
	f := newFixture(t)
	app := newApp(f.store)

	csv := "Tedarikçi Stok Kodu;Ürün Adı;Dolar Fiyatı;Komisyon Oranı\nX1;Kupa;2,5;15\n"
	resp, err := app.Test(uploadRequest(t, "/api/products/upload", "urunler.csv", csv))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	products := f.store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "X1", products[0].StockCode)
	assert.Equal(t, 2.5, products[0].UnitCostUSD)

	orders := "Sipariş Numarası;Stok Kodu;Adet;Faturalanacak Tutar\n100;X1;3;300\n"
	resp, err = app.Test(uploadRequest(t, "/api/orders/upload?mode=replace", "siparis.csv", orders))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, "/api/orders/upload?mode=append", "siparis.csv", orders))
	require.NoError(t, err)
	var up UploadResponse
	decode(t, resp, &up)
	assert.Equal(t, 1, up.Rows)
	assert.Equal(t, 2, up.Total)

	resp, err = app.Test(uploadRequest(t, "/api/orders/upload?mode=merge", "siparis.csv", orders))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, "/api/products/upload", "urunler.pdf", "x"))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListEndpointsReturnEmptyArrays(t *testing.T) {
	app := newApp(newFixture(t).store)
	for _, url := range []string{"/api/products", "/api/orders"} {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "[]", string(body), url)
	}
}

func TestUpdateAndDeleteProductEndpoints(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.UpsertProducts(context.Background(), []models.Product{{StockCode: "X1", Name: "Kupa"}}))
	app := newApp(f.store)

	resp, err := app.Test(jsonRequest("PUT", "/api/products", `{"match":{"stockCode":"X1"},"record":{"stockCode":"X1","name":"Kupa","unitCostUSD":3}}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3.0, f.store.Products()[0].UnitCostUSD)

	resp, err = app.Test(jsonRequest("PUT", "/api/products", `{"match":{}}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("DELETE", "/api/products", `{"stockCode":"YOK"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Kayıt bulunamadı", body["error"])

	resp, err = app.Test(jsonRequest("DELETE", "/api/products", `{"stockCode":"X1"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, f.store.Products())
}

func TestOrderLineEndpoints(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.UpsertOrderLines(context.Background(), []models.OrderLine{
		{OrderNumber: "1", ProductName: "Kupa", Quantity: 1},
	}))
	app := newApp(f.store)

	resp, err := app.Test(jsonRequest("PUT", "/api/orders", `{"match":{"orderNumber":"1","productName":"Kupa"},"record":{"orderNumber":"1","productName":"Kupa","quantity":0}}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, f.store.OrderLines()[0].Quantity)

	resp, err = app.Test(jsonRequest("DELETE", "/api/orders", `{}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("DELETE", "/api/orders", `{"orderNumber":"1","productName":"Kupa"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, f.store.OrderLines())
}

func TestExchangeRateEndpoints(t *testing.T) {
	app := newApp(newFixture(t).store)

	resp, err := app.Test(jsonRequest("PUT", "/api/exchange-rate", `{"rate":"34,5"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", "/api/exchange-rate", `{"rate":36}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", "/api/exchange-rate", `{"rate":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/exchange-rate", nil))
	require.NoError(t, err)
	var out ExchangeRateResponse
	decode(t, resp, &out)
	assert.Equal(t, 36.0, out.Rate)
}

func TestPlatformEndpoints(t *testing.T) {
	f := newFixture(t)
	app := newApp(f.store)

	resp, err := app.Test(jsonRequest("POST", "/api/platform", `{"platform":"HepsiBurada"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out PlatformResponse
	decode(t, resp, &out)
	assert.Equal(t, "hepsiburada", string(out.Platform))
	assert.Equal(t, "Hepsiburada", out.DisplayName)

	resp, err = app.Test(jsonRequest("POST", "/api/platform", `{"platform":"n11"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/platform/data", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
