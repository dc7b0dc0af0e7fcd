package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"sales-browser-api/pkg/models"
	"sales-browser-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// SalesHandler は売上レコードの閲覧APIを提供します。
// レコードストアは起動時に一度だけロードされ、以降は読み取り専用で共有されます。
type SalesHandler struct {
	records []models.SalesRecord
	service *services.SalesService
}

// NewSalesHandler は新しいSalesHandlerを生成します。
func NewSalesHandler(records []models.SalesRecord) *SalesHandler {
	return &SalesHandler{
		records: records,
		service: services.NewSalesService(),
	}
}

// RecordCount はストア内のレコード件数を返します。
func (h *SalesHandler) RecordCount() int {
	return len(h.records)
}

// GetSales は検索・絞り込み・並び替え・ページングを適用した売上一覧を返します。
// クエリパラメータの不正値はデフォルト値で補正し、リクエストを拒否しません。
func (h *SalesHandler) GetSales(c *gin.Context) {
	query := bindSalesQuery(c)

	// search → filter → sort → paginate の順で適用
	result := h.service.Search(h.records, query.SearchTerm)
	result = h.service.Filter(result, query.Filters)
	result = h.service.Sort(result, query.SortBy, query.SortOrder)
	page := h.service.Paginate(result, query.Page, query.PageSize)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       page.Data,
		"pagination": page.Pagination,
	})
}

// GetFilterOptions はフィルターUI向けの選択肢（カテゴリ値・年齢/日付の範囲）を返します。
func (h *SalesHandler) GetFilterOptions(c *gin.Context) {
	options := h.service.FilterOptions(h.records)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    options,
	})
}

// HealthCheck は外部のヘルスチェッカー（例: ロードバランサー）からのリクエストに応答します。
func (h *SalesHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"records": len(h.records),
	})
}

// AvailableEndpoints は404レスポンスに列挙する公開エンドポイント一覧です。
var AvailableEndpoints = []string{
	"GET /sales",
	"GET /sales/filter-options",
	"GET /health",
}

// NotFound は未定義ルートへの構造化404レスポンスを返します。
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success":            false,
		"error":              "NOT_FOUND",
		"message":            "The requested resource '" + c.Request.Method + " " + c.Request.URL.Path + "' could not be found.",
		"availableEndpoints": AvailableEndpoints,
	})
}

// Recovery はハンドラ内のpanicを捕捉し、プロセスを落とさずに500を返します。
func Recovery(c *gin.Context, err any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "INTERNAL_SERVER_ERROR",
		"message": "An unexpected error occurred",
	})
}

// bindSalesQuery は生のクエリパラメータをSalesQueryへ変換します。
// 全域関数であり、欠落・型不一致はデフォルト値で補い、決してエラーにしません。
func bindSalesQuery(c *gin.Context) models.SalesQuery {
	query := models.SalesQuery{
		SearchTerm: c.Query("search"),
		SortBy:     models.SortField(c.Query("sortBy")),
		SortOrder:  models.SortAsc,
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "pageSize", 10),
	}

	if strings.EqualFold(c.Query("sortOrder"), string(models.SortDesc)) {
		query.SortOrder = models.SortDesc
	}

	query.Filters = models.SalesFilters{
		CustomerRegion:  multiQuery(c, "customerRegion"),
		Gender:          multiQuery(c, "gender"),
		ProductCategory: multiQuery(c, "productCategory"),
		Tags:            multiQuery(c, "tags"),
		PaymentMethod:   multiQuery(c, "paymentMethod"),
	}

	// 範囲系は指定された境界だけを持つオブジェクトを構築する
	ageMin, hasAgeMin := intQueryOptional(c, "ageMin")
	ageMax, hasAgeMax := intQueryOptional(c, "ageMax")
	if hasAgeMin || hasAgeMax {
		ageRange := &models.AgeRange{}
		if hasAgeMin {
			ageRange.Min = &ageMin
		}
		if hasAgeMax {
			ageRange.Max = &ageMax
		}
		query.Filters.AgeRange = ageRange
	}

	dateStart := c.Query("dateStart")
	dateEnd := c.Query("dateEnd")
	if dateStart != "" || dateEnd != "" {
		dateRange := &models.DateRange{}
		if dateStart != "" {
			dateRange.Start = &dateStart
		}
		if dateEnd != "" {
			dateRange.End = &dateEnd
		}
		query.Filters.DateRange = dateRange
	}

	return query
}

// multiQuery は複数値パラメータを収集します。
// axios系クライアントが送る "key[]" 表記と、素の "key" の繰り返しの両方を受け付け、
// 単一値でも必ずリストに正規化します。
func multiQuery(c *gin.Context, key string) []string {
	values := c.QueryArray(key)
	values = append(values, c.QueryArray(key+"[]")...)

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// intQuery は整数パラメータを解析します。欠落・非数値はデフォルト値を返します。
func intQuery(c *gin.Context, key string, defaultValue int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return defaultValue
}

// intQueryOptional は任意の整数パラメータを解析します。
// 欠落・非数値は「未指定」として扱います。
func intQueryOptional(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
