package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"sales-browser-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// LoadSalesData は設定されたパスから売上レコードを読み込みます。
// 拡張子が.xlsxの場合はExcelとして、それ以外はSalesRecordのJSON配列として解析します。
// ファイル欠落・解析失敗はサンプルデータ生成でフォールバックし、エラーは呼び出し元へ返しません。
func LoadSalesData(path string, sampleCount int) []models.SalesRecord {
	if path == "" {
		return GenerateSampleData(sampleCount)
	}

	records, err := loadFromFile(path)
	if err != nil {
		log.Printf("Warning: could not load sales data from %s: %v (falling back to sample data)", path, err)
		return GenerateSampleData(sampleCount)
	}

	log.Printf("Loaded %d sales records from %s", len(records), path)
	return records
}

func loadFromFile(path string) ([]models.SalesRecord, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return loadFromExcel(path)
	}
	return loadFromJSON(path)
}

func loadFromJSON(path string) ([]models.SalesRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []models.SalesRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// loadFromExcel はExcelブックの先頭シートをレコードに変換します。
// ヘッダー行の列名（大文字小文字を無視）でフィールドを対応付けます。
func loadFromExcel(path string) ([]models.SalesRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := rows[0]
	col := func(names ...string) int { return findColumn(header, names...) }

	idx := map[string]int{
		"id":                 col("id"),
		"customerId":         col("customerId", "customer_id"),
		"customerName":       col("customerName", "customer_name"),
		"phoneNumber":        col("phoneNumber", "phone_number", "phone"),
		"gender":             col("gender"),
		"age":                col("age"),
		"customerRegion":     col("customerRegion", "customer_region", "region"),
		"customerType":       col("customerType", "customer_type"),
		"productId":          col("productId", "product_id"),
		"productName":        col("productName", "product_name"),
		"brand":              col("brand"),
		"productCategory":    col("productCategory", "product_category", "category"),
		"tags":               col("tags"),
		"quantity":           col("quantity"),
		"pricePerUnit":       col("pricePerUnit", "price_per_unit", "price"),
		"discountPercentage": col("discountPercentage", "discount_percentage", "discount"),
		"totalAmount":        col("totalAmount", "total_amount"),
		"finalAmount":        col("finalAmount", "final_amount"),
		"date":               col("date"),
		"paymentMethod":      col("paymentMethod", "payment_method"),
		"orderStatus":        col("orderStatus", "order_status"),
		"deliveryType":       col("deliveryType", "delivery_type"),
		"storeId":            col("storeId", "store_id"),
		"storeLocation":      col("storeLocation", "store_location"),
		"salespersonId":      col("salespersonId", "salesperson_id"),
		"employeeName":       col("employeeName", "employee_name"),
	}

	cell := func(row []string, key string) string {
		i := idx[key]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]models.SalesRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		r := models.SalesRecord{
			CustomerID:      cell(row, "customerId"),
			CustomerName:    cell(row, "customerName"),
			PhoneNumber:     cell(row, "phoneNumber"),
			Gender:          cell(row, "gender"),
			CustomerRegion:  cell(row, "customerRegion"),
			CustomerType:    cell(row, "customerType"),
			ProductID:       cell(row, "productId"),
			ProductName:     cell(row, "productName"),
			Brand:           cell(row, "brand"),
			ProductCategory: cell(row, "productCategory"),
			Date:            cell(row, "date"),
			PaymentMethod:   cell(row, "paymentMethod"),
			OrderStatus:     cell(row, "orderStatus"),
			DeliveryType:    cell(row, "deliveryType"),
			StoreID:         cell(row, "storeId"),
			StoreLocation:   cell(row, "storeLocation"),
			SalespersonID:   cell(row, "salespersonId"),
			EmployeeName:    cell(row, "employeeName"),
		}
		r.ID, _ = strconv.Atoi(cell(row, "id"))
		r.Age, _ = strconv.Atoi(cell(row, "age"))
		r.Quantity, _ = strconv.Atoi(cell(row, "quantity"))
		r.PricePerUnit, _ = strconv.ParseFloat(cell(row, "pricePerUnit"), 64)
		r.DiscountPercentage, _ = strconv.ParseFloat(cell(row, "discountPercentage"), 64)
		r.TotalAmount, _ = strconv.ParseFloat(cell(row, "totalAmount"), 64)
		r.FinalAmount, _ = strconv.ParseFloat(cell(row, "finalAmount"), 64)
		if tags := cell(row, "tags"); tags != "" {
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					r.Tags = append(r.Tags, t)
				}
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// findColumn は候補名のいずれかに一致する列インデックスを返します（大文字小文字を無視）。
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

// サンプルデータ生成用の固定プール
var (
	sampleRegions        = []string{"North", "South", "East", "West", "Central"}
	sampleGenders        = []string{"Male", "Female", "Other"}
	sampleCategories     = []string{"Electronics", "Clothing", "Food", "Books", "Home & Garden"}
	sampleBrands         = []string{"BrandA", "BrandB", "BrandC", "BrandD", "BrandE"}
	samplePaymentMethods = []string{"Credit Card", "Debit Card", "Cash", "UPI", "Net Banking"}
	sampleOrderStatuses  = []string{"Delivered", "Pending", "Cancelled", "Processing"}
	sampleDeliveryTypes  = []string{"Standard", "Express", "Same Day"}
	sampleTags           = []string{"Premium", "Sale", "New", "Popular", "Limited"}
)

// GenerateSampleData はデモ・テスト用の売上レコードをn件生成します。
// データソースが無い場合のフォールバック専用で、値はランダム、形は本番データと同一です。
func GenerateSampleData(n int) []models.SalesRecord {
	if n <= 0 {
		n = 50
	}

	records := make([]models.SalesRecord, 0, n)
	for i := 1; i <= n; i++ {
		quantity := rand.Intn(10) + 1
		pricePerUnit := float64(rand.Intn(1000) + 100)
		discount := float64(rand.Intn(30))
		totalAmount := float64(quantity) * pricePerUnit
		finalAmount := totalAmount * (1 - discount/100)
		date := time.Now().AddDate(0, 0, -rand.Intn(365))

		customerType := "Regular"
		if rand.Float64() > 0.5 {
			customerType = "Premium"
		}

		records = append(records, models.SalesRecord{
			ID:                 i,
			CustomerID:         fmt.Sprintf("CUST%04d", i),
			CustomerName:       fmt.Sprintf("Customer %d", i),
			PhoneNumber:        fmt.Sprintf("+1000000000%d", i),
			Gender:             sampleGenders[rand.Intn(len(sampleGenders))],
			Age:                rand.Intn(50) + 18,
			CustomerRegion:     sampleRegions[rand.Intn(len(sampleRegions))],
			CustomerType:       customerType,
			ProductID:          fmt.Sprintf("PROD%04d", i),
			ProductName:        fmt.Sprintf("Product %d", i),
			Brand:              sampleBrands[rand.Intn(len(sampleBrands))],
			ProductCategory:    sampleCategories[rand.Intn(len(sampleCategories))],
			Tags:               []string{sampleTags[rand.Intn(len(sampleTags))]},
			Quantity:           quantity,
			PricePerUnit:       pricePerUnit,
			DiscountPercentage: discount,
			TotalAmount:        totalAmount,
			FinalAmount:        math.Round(finalAmount*100) / 100,
			Date:               date.Format("2006-01-02"),
			PaymentMethod:      samplePaymentMethods[rand.Intn(len(samplePaymentMethods))],
			OrderStatus:        sampleOrderStatuses[rand.Intn(len(sampleOrderStatuses))],
			DeliveryType:       sampleDeliveryTypes[rand.Intn(len(sampleDeliveryTypes))],
			StoreID:            fmt.Sprintf("STORE%02d", rand.Intn(10)+1),
			StoreLocation:      fmt.Sprintf("Store %d", i),
			SalespersonID:      fmt.Sprintf("EMP%03d", rand.Intn(20)+1),
			EmployeeName:       fmt.Sprintf("Employee %d", rand.Intn(20)+1),
		})
	}
	return records
}
