package services

import (
	"strings"

	"gorm.io/gorm"
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// paginate counts q, then loads one page into dest ordered by order.
func paginate(q *gorm.DB, order string, page, pageSize int, dest interface{}) (Pagination, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * pageSize
	if err := q.Order(order).Offset(offset).Limit(pageSize).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// likeEscaper neutralizes LIKE metacharacters so search terms match
// literally. Queries using the pattern must carry an ESCAPE '\' clause:
// Postgres defaults to backslash but SQLite has no default escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-folded LIKE pattern; queries compare against
// LOWER(column) so the behavior matches on both Postgres and SQLite.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(search))) + "%"
}
