package platform

import (
	"strings"

	"pazaryeri-kar/internal/models"
	"pazaryeri-kar/internal/parse"
)

// Adapter ham tablo satırlarını platformun kolon eşlemesiyle kanonik kayıtlara çevirir
type Adapter struct {
	platform      Platform
	productFields FieldMap
	orderFields   FieldMap
}

func NewAdapter(p Platform) *Adapter {
	return &Adapter{
		platform:      p,
		productFields: p.ProductFields(),
		orderFields:   p.OrderFields(),
	}
}

func (a *Adapter) Platform() Platform {
	return a.platform
}

func (a *Adapter) Products(rows []map[string]string) []models.Product {
	res := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		res = append(res, a.Product(row))
	}
	return res
}

func (a *Adapter) Product(row map[string]string) models.Product {
	get := getter(row, a.productFields)
	return models.Product{
		StockCode:      get(FieldStockCode),
		Name:           get(FieldName),
		UnitCostUSD:    parse.Money(get(FieldUnitCostUSD)),
		CommissionRate: parse.Money(get(FieldCommissionRate)),
		Brand:          get(FieldBrand),
		Category:       get(FieldCategory),
		StockQuantity:  int(parse.Money(get(FieldStockQuantity))),
		ListPrice:      parse.Money(get(FieldListPrice)),
		Barcode:        parse.Identifier(get(FieldBarcode)),
		SKU:            get(FieldSKU),
		Extra:          extra(row, a.productFields),
	}
}

func (a *Adapter) OrderLines(rows []map[string]string) []models.OrderLine {
	res := make([]models.OrderLine, 0, len(rows))
	for _, row := range rows {
		res = append(res, a.OrderLine(row))
	}
	return res
}

func (a *Adapter) OrderLine(row map[string]string) models.OrderLine {
	get := getter(row, a.orderFields)
	return models.OrderLine{
		OrderNumber:      parse.Identifier(get(FieldOrderNumber)),
		PackageNumber:    parse.Identifier(get(FieldPackageNumber)),
		ItemNumber:       parse.Identifier(get(FieldItemNumber)),
		Barcode:          parse.Identifier(get(FieldBarcode)),
		StockCode:        get(FieldStockCode),
		ProductName:      get(FieldProductName),
		Quantity:         parse.Quantity(get(FieldQuantity)),
		Revenue:          parse.Money(get(FieldRevenue)),
		CommissionAmount: parse.Money(get(FieldCommissionAmount)),
		CommissionRate:   parse.Money(get(FieldCommissionRate)),
		City:             get(FieldCity),
		CargoCompany:     get(FieldCargoCompany),
		Status:           get(FieldStatus),
		CustomerType:     get(FieldCustomerType),
		Category:         get(FieldCategory),
		Customer:         get(FieldCustomer),
		Brand:            get(FieldBrand),
		OrderDate:        parse.TurkishDate(get(FieldOrderDate)),
		Extra:            extra(row, a.orderFields),
	}
}

// getter eşlemesi olmayan alanlar için boş döner
func getter(row map[string]string, fields FieldMap) func(Field) string {
	return func(f Field) string {
		col, ok := fields[f]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[col])
	}
}

func extra(row map[string]string, fields FieldMap) map[string]string {
	mapped := fields.Columns()
	var res map[string]string
	for k, v := range row {
		if mapped[k] || strings.TrimSpace(v) == "" {
			continue
		}
		if res == nil {
			res = make(map[string]string)
		}
		res[k] = v
	}
	return res
}
