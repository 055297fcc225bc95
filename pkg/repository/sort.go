package repository

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/JaimeStill/assessor/pkg/pagination"
)

// OrderBy appends ORDER BY terms for fields that have a column in columns.
// Unknown fields are skipped. When no field survives, fallback is used.
func OrderBy(
	b sq.SelectBuilder,
	fields []pagination.SortField,
	columns map[string]string,
	fallback ...pagination.SortField,
) sq.SelectBuilder {
	terms := orderTerms(fields, columns)
	if len(terms) == 0 {
		terms = orderTerms(fallback, columns)
	}
	if len(terms) == 0 {
		return b
	}
	return b.OrderBy(terms...)
}

// Page applies LIMIT and OFFSET for a normalized page request.
func Page(b sq.SelectBuilder, page pagination.PageRequest) sq.SelectBuilder {
	return b.
		Limit(uint64(page.PageSize)).
		Offset(uint64(page.Offset()))
}

func orderTerms(fields []pagination.SortField, columns map[string]string) []string {
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := columns[f.Field]
		if !ok {
			continue
		}
		terms = append(terms, col+" "+f.Direction())
	}
	return terms
}
