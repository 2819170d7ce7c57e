package platform

// Field kanonik kayıt alanı
type Field string

const (
	FieldStockCode        Field = "stockCode"
	FieldName             Field = "name"
	FieldUnitCostUSD      Field = "unitCostUSD"
	FieldCommissionRate   Field = "commissionRate"
	FieldCommissionAmount Field = "commissionAmount"
	FieldBrand            Field = "brand"
	FieldCategory         Field = "category"
	FieldStockQuantity    Field = "stockQuantity"
	FieldListPrice        Field = "listPrice"
	FieldBarcode          Field = "barcode"
	FieldSKU              Field = "sku"

	FieldOrderNumber   Field = "orderNumber"
	FieldPackageNumber Field = "packageNumber"
	FieldItemNumber    Field = "itemNumber"
	FieldProductName   Field = "productName"
	FieldQuantity      Field = "quantity"
	FieldRevenue       Field = "revenue"
	FieldCity          Field = "city"
	FieldCargoCompany  Field = "cargoCompany"
	FieldStatus        Field = "status"
	FieldCustomerType  Field = "customerType"
	FieldCustomer      Field = "customer"
	FieldOrderDate     Field = "orderDate"
)

// FieldMap kanonik alan -> kaynak dosyadaki kolon adı
type FieldMap map[Field]string

func (p Platform) ProductFields() FieldMap {
	if p == Hepsiburada {
		return FieldMap{
			FieldStockCode:      "Satıcı Stok Kodu",
			FieldName:           "Ürün Adı",
			FieldUnitCostUSD:    "Dolar Fiyatı",
			FieldCommissionRate: "Komisyon Oranı",
			FieldBrand:          "Marka",
			FieldCategory:       "Ana Kategori",
			FieldStockQuantity:  "Stok",
			FieldListPrice:      "Fiyat",
			FieldBarcode:        "Barkod",
			FieldSKU:            "SKU",
		}
	}
	return FieldMap{
		FieldStockCode:      "Tedarikçi Stok Kodu",
		FieldName:           "Ürün Adı",
		FieldUnitCostUSD:    "Dolar Fiyatı",
		FieldCommissionRate: "Komisyon Oranı",
		FieldBrand:          "Marka",
		FieldCategory:       "Kategori İsmi",
		FieldStockQuantity:  "Ürün Stok Adedi",
		FieldListPrice:      "Trendyol'da Satılacak Fiyat (KDV Dahil)",
		FieldBarcode:        "Barkod",
	}
}

func (p Platform) OrderFields() FieldMap {
	if p == Hepsiburada {
		return FieldMap{
			FieldOrderNumber:      "Sipariş Numarası",
			FieldPackageNumber:    "Paket Numarası",
			FieldItemNumber:       "Kalem Numarası",
			FieldBarcode:          "Barkod",
			FieldStockCode:        "Satıcı Stok Kodu",
			FieldProductName:      "Ürün Adı",
			FieldQuantity:         "Adet",
			FieldRevenue:          "Faturalandırılacak Satış Fiyatı",
			FieldCommissionAmount: "Komisyon Tutarı (KDV Dahil)",
			FieldCity:             "Şehir",
			FieldCargoCompany:     "Kargo Firması",
			FieldStatus:           "Paket Durumu",
			FieldCustomerType:     "Müşteri Tipi",
			FieldCategory:         "Kategori",
			FieldCustomer:         "Alıcı",
			FieldOrderDate:        "Sipariş Tarihi",
		}
	}
	return FieldMap{
		FieldOrderNumber:    "Sipariş Numarası",
		FieldPackageNumber:  "Paket No",
		FieldBarcode:        "Barkod",
		FieldStockCode:      "Stok Kodu",
		FieldProductName:    "Ürün Adı",
		FieldQuantity:       "Adet",
		FieldRevenue:        "Faturalanacak Tutar",
		FieldCommissionRate: "Komisyon Oranı",
		FieldCity:           "İl",
		FieldCargoCompany:   "Kargo Firması",
		FieldStatus:         "Sipariş Statüsü",
		FieldBrand:          "Marka",
		FieldOrderDate:      "Sipariş Tarihi",
	}
}

// Columns eşlenmiş kaynak kolon adlarını döndürür
func (m FieldMap) Columns() map[string]bool {
	cols := make(map[string]bool, len(m))
	for _, c := range m {
		cols[c] = true
	}
	return cols
}
