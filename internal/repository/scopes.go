package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Alive restricts a query to rows that have not been soft-deleted. This is
// the scope every ordinary lookup must go through.
func Alive(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// Dead restricts a query to soft-deleted rows only.
func Dead(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NOT NULL")
}

// ListFilter carries the optional list constraints shared by both entities.
// Search matches case-insensitively against the entity's search column,
// Ordering accepts "name" or "created_at" with an optional "-" prefix.
type ListFilter struct {
	Status   string
	Search   string
	Ordering string
	Offset   int
	Limit    int
}

var orderableColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// orderClause translates an ordering parameter into a SQL order expression.
// Unknown fields are ignored and the stable default ordering by id is used.
func orderClause(ordering string) string {
	field := strings.TrimPrefix(ordering, "-")
	col, ok := orderableColumns[field]
	if !ok {
		return "id"
	}
	if strings.HasPrefix(ordering, "-") {
		return col + " DESC"
	}
	return col
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchClause applies a case-insensitive containment match, portable across
// sqlite and postgres. LIKE metacharacters in the term match themselves.
func searchClause(db *gorm.DB, column, term string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return db.Where("lower("+column+") LIKE ? ESCAPE '\\'", pattern)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
