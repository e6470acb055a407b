package postgres

import (
	"strconv"
	"strings"

	"creatorcore/internal/access"
)

// valuesClause renders "($1, $2), ($3, $4)" for rows*cols positional arguments starting at
// offset+1.
func valuesClause(rows, cols, offset int) string {
	var sb strings.Builder
	n := offset
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(",\n\t\t\t")
		}
		sb.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// scoped appends the access predicate for column to args and returns the fragment.
func scoped(ac access.Context, column string, args []any) (string, []any) {
	pred, extra := ac.Predicate(column, len(args)+1)
	return pred, append(args, extra...)
}

func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
