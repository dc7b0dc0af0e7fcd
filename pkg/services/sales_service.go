package services

import (
	"sort"
	"strings"
	"time"

	"sales-browser-api/pkg/models"
)

// SalesService implements the in-memory query pipeline over sales records:
// Search → Filter → Sort → Paginate, plus FilterOptions for the filter panel.
// Every operation is a pure function: the input slice is never mutated and
// input order is preserved unless a sort is requested.
type SalesService struct {
	dateLayouts []string // accepted date formats, tried in order
}

// NewSalesService creates a new SalesService.
func NewSalesService() *SalesService {
	return &SalesService{
		dateLayouts: []string{
			"2006-01-02",
			time.RFC3339,
			"2006/01/02",
		},
	}
}

// Search returns the records whose customerName or phoneNumber contains the
// trimmed term, case-insensitively. An empty or whitespace-only term returns
// the input unchanged.
func (s *SalesService) Search(records []models.SalesRecord, term string) []models.SalesRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}

	matched := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		name := strings.ToLower(r.CustomerName)
		phone := strings.ToLower(r.PhoneNumber)
		if strings.Contains(name, term) || strings.Contains(phone, term) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Filter returns the records satisfying every set condition (AND across
// keys). List conditions match when the record's value is one of the listed
// values; an empty list is no constraint. Range bounds are inclusive and may
// be set independently.
func (s *SalesService) Filter(records []models.SalesRecord, filters models.SalesFilters) []models.SalesRecord {
	if filters.IsEmpty() {
		return records
	}

	matched := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		if s.matches(r, filters) {
			matched = append(matched, r)
		}
	}
	return matched
}

func (s *SalesService) matches(r models.SalesRecord, f models.SalesFilters) bool {
	if len(f.CustomerRegion) > 0 && !contains(f.CustomerRegion, r.CustomerRegion) {
		return false
	}
	if len(f.Gender) > 0 && !contains(f.Gender, r.Gender) {
		return false
	}
	if f.AgeRange != nil {
		if f.AgeRange.Min != nil && r.Age < *f.AgeRange.Min {
			return false
		}
		if f.AgeRange.Max != nil && r.Age > *f.AgeRange.Max {
			return false
		}
	}
	if len(f.ProductCategory) > 0 && !contains(f.ProductCategory, r.ProductCategory) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(r.Tags, f.Tags) {
		return false
	}
	if len(f.PaymentMethod) > 0 && !contains(f.PaymentMethod, r.PaymentMethod) {
		return false
	}
	if f.DateRange != nil {
		// Calendar-date comparison. A record date that does not parse
		// cannot satisfy a bound.
		date, ok := s.parseDate(r.Date)
		if f.DateRange.Start != nil {
			start, sok := s.parseDate(*f.DateRange.Start)
			if !ok || (sok && date.Before(start)) {
				return false
			}
		}
		if f.DateRange.End != nil {
			end, eok := s.parseDate(*f.DateRange.End)
			if !ok || (eok && date.After(end)) {
				return false
			}
		}
	}
	return true
}

// Sort returns a sorted copy of records. An empty or unrecognized sortBy
// returns the input unchanged. The sort is stable, and a descending order
// inverts the comparison itself rather than reversing the result, so equal
// keys keep their input order in both directions.
func (s *SalesService) Sort(records []models.SalesRecord, sortBy models.SortField, order models.SortOrder) []models.SalesRecord {
	var cmp func(a, b models.SalesRecord) int
	switch sortBy {
	case models.SortByDate:
		cmp = func(a, b models.SalesRecord) int {
			da, _ := s.parseDate(a.Date)
			db, _ := s.parseDate(b.Date)
			return da.Compare(db)
		}
	case models.SortByQuantity:
		cmp = func(a, b models.SalesRecord) int {
			switch {
			case a.Quantity < b.Quantity:
				return -1
			case a.Quantity > b.Quantity:
				return 1
			}
			return 0
		}
	case models.SortByCustomerName:
		cmp = func(a, b models.SalesRecord) int {
			return strings.Compare(strings.ToLower(a.CustomerName), strings.ToLower(b.CustomerName))
		}
	default:
		return records
	}

	desc := order == models.SortDesc
	sorted := make([]models.SalesRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// Paginate slices out one page and computes pagination metadata from the
// full pre-slice length. Page and pageSize below 1 are floored to 1; a page
// past the end yields empty data, never an error.
func (s *SalesService) Paginate(records []models.SalesRecord, page, pageSize int) models.PaginatedSales {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(records)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	// A page past the last has nothing to slice. Returning before the
	// offset multiply also keeps arbitrarily large page/pageSize values
	// from overflowing into negative slice bounds.
	if page > totalPages {
		return models.PaginatedSales{
			Data: []models.SalesRecord{},
			Pagination: models.Pagination{
				CurrentPage:     page,
				PageSize:        pageSize,
				TotalItems:      total,
				TotalPages:      totalPages,
				HasNextPage:     false,
				HasPreviousPage: page > 1,
			},
		}
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	data := make([]models.SalesRecord, end-start)
	copy(data, records[start:end])

	return models.PaginatedSales{
		Data: data,
		Pagination: models.Pagination{
			CurrentPage:     page,
			PageSize:        pageSize,
			TotalItems:      total,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}
}

// FilterOptions collects the distinct non-empty values of each categorical
// field (sorted ascending, tags flattened across records) and the observed
// age/date bounds. The age range defaults to (0, 100) and the date range to
// (null, null) on an empty store. Recomputed per call; the store is static
// for the process lifetime so there is nothing to invalidate.
func (s *SalesService) FilterOptions(records []models.SalesRecord) models.FilterOptions {
	regions := make(map[string]struct{})
	genders := make(map[string]struct{})
	categories := make(map[string]struct{})
	tags := make(map[string]struct{})
	payments := make(map[string]struct{})

	minAge, maxAge := 0, 100
	agesSeen := false
	var minDate, maxDate time.Time
	var minDateStr, maxDateStr string

	for _, r := range records {
		addNonEmpty(regions, r.CustomerRegion)
		addNonEmpty(genders, r.Gender)
		addNonEmpty(categories, r.ProductCategory)
		addNonEmpty(payments, r.PaymentMethod)
		for _, t := range r.Tags {
			addNonEmpty(tags, t)
		}

		if !agesSeen {
			minAge, maxAge = r.Age, r.Age
			agesSeen = true
		} else {
			if r.Age < minAge {
				minAge = r.Age
			}
			if r.Age > maxAge {
				maxAge = r.Age
			}
		}

		if d, ok := s.parseDate(r.Date); ok {
			if minDateStr == "" || d.Before(minDate) {
				minDate, minDateStr = d, r.Date
			}
			if maxDateStr == "" || d.After(maxDate) {
				maxDate, maxDateStr = d, r.Date
			}
		}
	}

	opts := models.FilterOptions{
		CustomerRegion:  sortedKeys(regions),
		Gender:          sortedKeys(genders),
		AgeRange:        models.AgeBounds{Min: minAge, Max: maxAge},
		ProductCategory: sortedKeys(categories),
		Tags:            sortedKeys(tags),
		PaymentMethod:   sortedKeys(payments),
	}
	if minDateStr != "" {
		opts.DateRange.Min = &minDateStr
		opts.DateRange.Max = &maxDateStr
	}
	return opts
}

// parseDate parses a record or filter date, trying the accepted layouts in
// order. The zero time with ok=false is returned when nothing matches.
func (s *SalesService) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range s.dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		if contains(b, x) {
			return true
		}
	}
	return false
}

func addNonEmpty(set map[string]struct{}, value string) {
	if value != "" {
		set[value] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
