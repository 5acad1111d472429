package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound reports a row that does not exist.
var ErrNotFound = errors.New("not found")

// partialUpdate writes only the provided fields, in deterministic column
// order. The allowed set guards against writing id/company_id or arbitrary
// SQL through the map keys.
func (s *Store) partialUpdate(table string, allowed map[string]bool, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	cols := make([]string, 0, len(fields))
	for k := range fields {
		if !allowed[k] {
			return fmt.Errorf("field %q is not updatable on %s", k, table)
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c+" = ?")
		args = append(args, fields[c])
	}
	args = append(args, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", table, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
