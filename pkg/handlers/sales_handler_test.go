package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sales-browser-api/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRecords() []models.SalesRecord {
	return []models.SalesRecord{
		{ID: 1, CustomerName: "Customer 1", PhoneNumber: "+10000000001", Gender: "Male", Age: 20, CustomerRegion: "North", ProductCategory: "Electronics", Tags: []string{"Premium"}, PaymentMethod: "Cash", Quantity: 5, Date: "2023-01-01"},
		{ID: 2, CustomerName: "Alice Smith", PhoneNumber: "+10000000002", Gender: "Female", Age: 35, CustomerRegion: "South", ProductCategory: "Books", Tags: []string{"Sale"}, PaymentMethod: "UPI", Quantity: 2, Date: "2023-06-01"},
		{ID: 3, CustomerName: "Bob Jones", PhoneNumber: "+10000000003", Gender: "Other", Age: 50, CustomerRegion: "North", ProductCategory: "Food", PaymentMethod: "Credit Card", Quantity: 5, Date: "2023-03-15"},
	}
}

// setupRouter はテスト用のルーターを構築します。
func setupRouter(records []models.SalesRecord) *gin.Engine {
	gin.SetMode(gin.TestMode)

	salesHandler := NewSalesHandler(records)

	r := gin.New()
	r.Use(gin.CustomRecovery(Recovery))
	r.GET("/health", salesHandler.HealthCheck)
	r.GET("/sales", salesHandler.GetSales)
	r.GET("/sales/filter-options", salesHandler.GetFilterOptions)
	r.NoRoute(NotFound)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest("GET", path, nil)
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestGetSalesEnvelope(t *testing.T) {
	r := setupRouter(testRecords())

	w, body := doRequest(t, r, "/sales")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 3)

	pagination, ok := body["pagination"].(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, float64(1), pagination["currentPage"])
		assert.Equal(t, float64(10), pagination["pageSize"])
		assert.Equal(t, float64(3), pagination["totalItems"])
		assert.Equal(t, float64(1), pagination["totalPages"])
		assert.Equal(t, false, pagination["hasNextPage"])
		assert.Equal(t, false, pagination["hasPreviousPage"])
	}
}

func TestGetSalesSearchFilterSortPaginate(t *testing.T) {
	r := setupRouter(testRecords())

	// region North → records 1 and 3; date desc → 3, 1; page 2 of size 1 → record 1
	w, body := doRequest(t, r, "/sales?customerRegion=North&sortBy=date&sortOrder=desc&page=2&pageSize=1")

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := body["data"].([]interface{})
	if assert.True(t, ok) && assert.Len(t, data, 1) {
		record := data[0].(map[string]interface{})
		assert.Equal(t, float64(1), record["id"])
	}

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["totalItems"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, true, pagination["hasPreviousPage"])
}

func TestGetSalesInvalidPageFallsBackToDefaults(t *testing.T) {
	r := setupRouter(testRecords())

	w, body := doRequest(t, r, "/sales?page=abc&pageSize=xyz")

	assert.Equal(t, http.StatusOK, w.Code)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["currentPage"])
	assert.Equal(t, float64(10), pagination["pageSize"])
}

func TestGetSalesHugePageYieldsEmptyPage(t *testing.T) {
	r := setupRouter(testRecords())

	// 任意の整数入力に対して全域で、エラーではなく空ページを返す
	w, body := doRequest(t, r, "/sales?page=9223372036854775807&pageSize=10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["data"])

	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["totalItems"])
	assert.Equal(t, false, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPreviousPage"])
}

func TestGetFilterOptions(t *testing.T) {
	r := setupRouter(testRecords())

	w, body := doRequest(t, r, "/sales/filter-options")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	if assert.True(t, ok) {
		assert.Equal(t, []interface{}{"North", "South"}, data["customerRegion"])
		ageRange := data["ageRange"].(map[string]interface{})
		assert.Equal(t, float64(20), ageRange["min"])
		assert.Equal(t, float64(50), ageRange["max"])
	}
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(testRecords())

	w, body := doRequest(t, r, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["records"])
}

func TestNotFoundRoute(t *testing.T) {
	r := setupRouter(testRecords())

	w, body := doRequest(t, r, "/no/such/route")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "NOT_FOUND", body["error"])
	assert.Contains(t, body["message"], "GET /no/such/route")
	assert.Equal(t, []interface{}{"GET /sales", "GET /sales/filter-options", "GET /health"}, body["availableEndpoints"])
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.CustomRecovery(Recovery))
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w, body := doRequest(t, r, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body["error"])
}

// bindContext は指定URLのクエリを持つgin.Contextを生成します。
func bindContext(t *testing.T, rawURL string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.Request = req
	return c
}

func TestBindSalesQueryDefaults(t *testing.T) {
	c := bindContext(t, "/sales")

	query := bindSalesQuery(c)

	assert.Equal(t, "", query.SearchTerm)
	assert.Equal(t, models.SortField(""), query.SortBy)
	assert.Equal(t, models.SortAsc, query.SortOrder)
	assert.Equal(t, 1, query.Page)
	assert.Equal(t, 10, query.PageSize)
	assert.True(t, query.Filters.IsEmpty())
}

func TestBindSalesQuerySingleValueBecomesList(t *testing.T) {
	c := bindContext(t, "/sales?gender=Female")

	query := bindSalesQuery(c)

	assert.Equal(t, []string{"Female"}, query.Filters.Gender)
}

func TestBindSalesQueryBracketArraySpelling(t *testing.T) {
	c := bindContext(t, "/sales?tags[]=Premium&tags[]=Sale&customerRegion=North&customerRegion=South")

	query := bindSalesQuery(c)

	assert.Equal(t, []string{"Premium", "Sale"}, query.Filters.Tags)
	assert.Equal(t, []string{"North", "South"}, query.Filters.CustomerRegion)
}

func TestBindSalesQueryPartialAgeRange(t *testing.T) {
	c := bindContext(t, "/sales?ageMin=30")

	query := bindSalesQuery(c)

	if assert.NotNil(t, query.Filters.AgeRange) {
		if assert.NotNil(t, query.Filters.AgeRange.Min) {
			assert.Equal(t, 30, *query.Filters.AgeRange.Min)
		}
		assert.Nil(t, query.Filters.AgeRange.Max)
	}
}

func TestBindSalesQueryNonNumericAgeBoundIgnored(t *testing.T) {
	c := bindContext(t, "/sales?ageMin=abc&ageMax=40")

	query := bindSalesQuery(c)

	if assert.NotNil(t, query.Filters.AgeRange) {
		assert.Nil(t, query.Filters.AgeRange.Min)
		if assert.NotNil(t, query.Filters.AgeRange.Max) {
			assert.Equal(t, 40, *query.Filters.AgeRange.Max)
		}
	}
}

func TestBindSalesQueryDateRange(t *testing.T) {
	c := bindContext(t, "/sales?dateStart=2023-01-01")

	query := bindSalesQuery(c)

	if assert.NotNil(t, query.Filters.DateRange) {
		if assert.NotNil(t, query.Filters.DateRange.Start) {
			assert.Equal(t, "2023-01-01", *query.Filters.DateRange.Start)
		}
		assert.Nil(t, query.Filters.DateRange.End)
	}
}

func TestBindSalesQuerySortOrder(t *testing.T) {
	c := bindContext(t, "/sales?sortBy=quantity&sortOrder=DESC")
	query := bindSalesQuery(c)
	assert.Equal(t, models.SortByQuantity, query.SortBy)
	assert.Equal(t, models.SortDesc, query.SortOrder)

	c = bindContext(t, "/sales?sortOrder=sideways")
	query = bindSalesQuery(c)
	assert.Equal(t, models.SortAsc, query.SortOrder)
}
