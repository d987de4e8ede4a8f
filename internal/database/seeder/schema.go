package seeder

import (
	"context"
	"fmt"
	"strings"

	"internhub/internal/database"
)

// EnsureTableColumns fails when the migrated schema lacks a column a seeder writes.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if missing := missingColumns(existing, columns); len(missing) > 0 {
		return fmt.Errorf("schema mismatch: %s lacks %s", table, strings.Join(missing, ", "))
	}
	return nil
}

func missingColumns(existing map[string]struct{}, want []string) []string {
	var missing []string
	for _, col := range want {
		if _, ok := existing[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
