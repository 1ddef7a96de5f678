package meals

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyBatch     = errors.New("empty batch")
	ErrMalformedBatch = errors.New("malformed batch")
)

// BuildBulkUpsert renders the VALUES clause and flattened argument list
// for a multi-record insert. Placeholders are numbered contiguously in
// record-major order: ($1..$K),($K+1..$2K),... so the args slice can be
// passed straight to ExecContext.
func BuildBulkUpsert(rows [][]any) (string, []any, error) {
	if len(rows) == 0 {
		return "", nil, ErrEmptyBatch
	}
	width := len(rows[0])
	if width == 0 {
		return "", nil, fmt.Errorf("%w: record 0 has no columns", ErrMalformedBatch)
	}

	var clause strings.Builder
	args := make([]any, 0, len(rows)*width)
	n := 1
	for i, row := range rows {
		if len(row) != width {
			return "", nil, fmt.Errorf("%w: record %d has %d columns, want %d", ErrMalformedBatch, i, len(row), width)
		}
		if i > 0 {
			clause.WriteByte(',')
		}
		clause.WriteByte('(')
		for j := range row {
			if j > 0 {
				clause.WriteByte(',')
			}
			fmt.Fprintf(&clause, "$%d", n)
			n++
		}
		clause.WriteByte(')')
		args = append(args, row...)
	}
	return clause.String(), args, nil
}
