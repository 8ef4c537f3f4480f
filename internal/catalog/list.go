package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/mercaline/mercaline-backend/pkg/errors"
	"github.com/mercaline/mercaline-backend/pkg/pagination"
)

// SummaryFilters describe the supported filter knobs for the browse endpoint.
// Only active products are ever listed; these narrow further.
type SummaryFilters struct {
	Category    *string
	Brand       *string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
}

// ListInput captures the inputs needed to paginate/filter/sort summaries.
type ListInput struct {
	Filters    SummaryFilters
	Pagination pagination.Params
	SortBy     string
	SortOrder  string
}

var sortableColumns = map[string]string{
	"created_at": "created_at",
	"base_price": "base_price",
	"name":       "name",
	"view_count": "view_count",
}

// orderClause validates the requested sort pair against the whitelist and
// returns the SQL ORDER BY expression. Defaults to newest-created first.
func orderClause(sortBy, sortOrder string) (string, error) {
	column := "created_at"
	if sortBy != "" {
		mapped, ok := sortableColumns[strings.ToLower(sortBy)]
		if !ok {
			return "", pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("unsupported sort_by %q", sortBy),
			)
		}
		column = mapped
	}

	direction := "DESC"
	switch strings.ToLower(sortOrder) {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return "", pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported sort_order %q", sortOrder),
		)
	}

	return column + " " + direction, nil
}
