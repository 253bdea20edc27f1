package persistence

import "strings"

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns defaultField when the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"email":          true,
	"first_name":     true,
	"last_name":      true,
	"status":         true,
	"loyalty_points": true,
	"loyalty_tier":   true,
	"total_spent":    true,
	"last_order_at":  true,
}

// AdminUserSortFields contains allowed sort fields for admin users
var AdminUserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"name":       true,
	"role":       true,
}
