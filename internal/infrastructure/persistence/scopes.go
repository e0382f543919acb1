package persistence

import (
	"strings"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OwnedBy restricts a query to the rows of one seller. Every dashboard
// query goes through it so one seller can never read another's catalog.
func OwnedBy(table string, userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".user_id = ?", userID)
	}
}

// Paginate applies offset and limit when the filter asks for a page
func Paginate(filter shared.Filter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Page > 0 && filter.PageSize > 0 {
			return db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// SortColumns lists the columns a listing may be ordered by
type SortColumns struct {
	allowed  map[string]struct{}
	fallback string
}

// NewSortColumns allows columns and falls back to the first one
func NewSortColumns(columns ...string) SortColumns {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return SortColumns{allowed: allowed, fallback: columns[0]}
}

// Resolve returns the requested column if allowed, else the fallback.
// Matching is exact so user input never reaches SQL unchecked.
func (s SortColumns) Resolve(requested string) string {
	if _, ok := s.allowed[strings.TrimSpace(requested)]; ok {
		return strings.TrimSpace(requested)
	}
	return s.fallback
}

var (
	ProductSort  = NewSortColumns("created_at", "updated_at", "code", "name", "price")
	CategorySort = NewSortColumns("name", "created_at", "updated_at")
)

// descending is true unless the direction is "asc" in any case
func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

// OrderBy sorts by an allowed column of table
func OrderBy(table string, filter shared.Filter, columns SortColumns) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: table, Name: columns.Resolve(filter.OrderBy)},
			Desc:   descending(filter.OrderDir),
		})
	}
}

// likePattern builds a case-insensitive LIKE pattern; % and _ in the input
// are escaped so they match literally
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(replacer.Replace(strings.TrimSpace(search))) + "%"
}
