package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the requested direction to ASC or DESC,
// falling back to defaultDir for anything else.
func ValidateSortOrder(orderDir, defaultDir string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultDir
}

// ValidateSortField checks the requested field against a whitelist of
// real column names. Anything else, including an empty request, sorts
// by defaultField. The whitelist is what keeps user input out of the
// ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"cost_price": true,
	"sale_price": true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"total_amount": true,
	"total_cost":   true,
	"total_profit": true,
	"completed_at": true,
}

// StockEntrySortFields contains allowed sort fields for stock entries
var StockEntrySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"product_id":   true,
	"quantity":     true,
	"last_updated": true,
}
