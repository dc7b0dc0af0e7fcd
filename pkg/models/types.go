package models

// SalesRecord represents a single sales transaction line
type SalesRecord struct {
	ID                 int      `json:"id"`
	CustomerID         string   `json:"customerId"`
	CustomerName       string   `json:"customerName"`
	PhoneNumber        string   `json:"phoneNumber"`
	Gender             string   `json:"gender"` // Male / Female / Other
	Age                int      `json:"age"`
	CustomerRegion     string   `json:"customerRegion"`
	CustomerType       string   `json:"customerType"` // Regular / Premium
	ProductID          string   `json:"productId"`
	ProductName        string   `json:"productName"`
	Brand              string   `json:"brand"`
	ProductCategory    string   `json:"productCategory"`
	Tags               []string `json:"tags"`
	Quantity           int      `json:"quantity"`
	PricePerUnit       float64  `json:"pricePerUnit"`
	DiscountPercentage float64  `json:"discountPercentage"`
	TotalAmount        float64  `json:"totalAmount"` // quantity × pricePerUnit（ロード時に確定）
	FinalAmount        float64  `json:"finalAmount"` // 割引適用後・小数第2位で丸め
	Date               string   `json:"date"`        // YYYY-MM-DD
	PaymentMethod      string   `json:"paymentMethod"`
	OrderStatus        string   `json:"orderStatus"`
	DeliveryType       string   `json:"deliveryType"`
	StoreID            string   `json:"storeId"`
	StoreLocation      string   `json:"storeLocation"`
	SalespersonID      string   `json:"salespersonId"`
	EmployeeName       string   `json:"employeeName"`
}

// SortField represents a field that can be sorted on.
type SortField string

const (
	SortByDate         SortField = "date"
	SortByQuantity     SortField = "quantity"
	SortByCustomerName SortField = "customerName"
)

// SortOrder represents sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// AgeRange は年齢の範囲条件です。境界が未指定の場合はnilになります。
type AgeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// DateRange は日付（YYYY-MM-DD）の範囲条件です。境界が未指定の場合はnilになります。
type DateRange struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// SalesFilters は /sales の絞り込み条件一式です。
// リスト系は「いずれかに一致」、キー間はANDで評価されます。空リストは無条件扱いです。
type SalesFilters struct {
	CustomerRegion  []string   `json:"customerRegion,omitempty"`
	Gender          []string   `json:"gender,omitempty"`
	ProductCategory []string   `json:"productCategory,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	PaymentMethod   []string   `json:"paymentMethod,omitempty"`
	AgeRange        *AgeRange  `json:"ageRange,omitempty"`
	DateRange       *DateRange `json:"dateRange,omitempty"`
}

// IsEmpty reports whether no filter condition is set.
func (f SalesFilters) IsEmpty() bool {
	return len(f.CustomerRegion) == 0 &&
		len(f.Gender) == 0 &&
		len(f.ProductCategory) == 0 &&
		len(f.Tags) == 0 &&
		len(f.PaymentMethod) == 0 &&
		f.AgeRange == nil &&
		f.DateRange == nil
}

// SalesQuery は1リクエスト分のクエリ仕様です。バインダーが生成し、レスポンス後に破棄されます。
type SalesQuery struct {
	SearchTerm string
	Filters    SalesFilters
	SortBy     SortField
	SortOrder  SortOrder
	Page       int
	PageSize   int
}

// Pagination はページングのメタデータです。
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// PaginatedSales is one page of records plus pagination metadata.
type PaginatedSales struct {
	Data       []SalesRecord `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// AgeBounds is the observed min/max age over the whole store.
type AgeBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DateBounds is the observed min/max date over the whole store.
// Both are null when the store is empty.
type DateBounds struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

// FilterOptions はフィルターUI向けの選択肢スナップショットです。
// カテゴリ系は昇順ソート済みの重複なしリスト、範囲系は全レコードの観測min/maxです。
type FilterOptions struct {
	CustomerRegion  []string   `json:"customerRegion"`
	Gender          []string   `json:"gender"`
	AgeRange        AgeBounds  `json:"ageRange"`
	ProductCategory []string   `json:"productCategory"`
	Tags            []string   `json:"tags"`
	PaymentMethod   []string   `json:"paymentMethod"`
	DateRange       DateBounds `json:"dateRange"`
}
