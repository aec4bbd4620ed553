package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Columns returns the lower-cased column names of table, in table order.
// A missing table yields an empty list.
func Columns(db *gorm.DB, table string) ([]string, error) {
	if !db.Migrator().HasTable(table) {
		return []string{}, nil
	}
	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	names := make([]string, 0, len(types))
	for _, col := range types {
		names = append(names, strings.ToLower(col.Name()))
	}
	return names, nil
}

// MissingColumns reports which of the required columns table lacks.
func MissingColumns(db *gorm.DB, table string, required []string) ([]string, error) {
	columns, err := Columns(db, table)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, r := range required {
		if _, ok := present[strings.ToLower(r)]; !ok {
			missing = append(missing, r)
		}
	}
	return missing, nil
}
