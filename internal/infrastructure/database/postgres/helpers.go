package postgres

import (
	"fmt"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate normalizes page and size and returns limit and offset.
func paginate(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

// orderClause only accepts whitelisted columns. An unknown column falls back
// to the default ordering, fallback DESC, whatever direction was asked for.
func orderClause(table, sortBy, sortOrder string, allowed map[string]bool, fallback string) string {
	if sortBy != "" && !allowed[sortBy] {
		return fmt.Sprintf("%s.%s DESC", table, fallback)
	}

	column := fallback
	if sortBy != "" {
		column = sortBy
	}
	direction := "DESC"
	if strings.ToLower(sortOrder) == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s.%s %s", table, column, direction)
}

// likePattern builds a case-insensitive LIKE argument; callers compare with LOWER(column).
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func strPtr(s string) *string {
	return &s
}
