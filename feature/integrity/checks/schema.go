package checks

import (
	"fmt"
	"reflect"
	"strings"

	"receiving-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// Missing returns the missing columns of every table that has any.
func (r *SchemaReport) Missing() map[string][]string {
	out := make(map[string][]string)
	for table, tr := range r.Tables {
		if len(tr.MissingColumns) > 0 {
			out[table] = tr.MissingColumns
		}
	}
	return out
}

// CheckSchema verifies the database schema using GORM models as the source of truth.
// Every field with a 'column:' tag must exist in the model's table.
func CheckSchema(db *gorm.DB, models ...interface{}) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range models {
		val := reflect.TypeOf(model)
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct {
			return nil, fmt.Errorf("model %T is not a struct", model)
		}

		tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", val.Name())
		}
		tableName := tabler.TableName()

		var columns []string
		for i := 0; i < val.NumField(); i++ {
			if col := parseGormColumn(val.Field(i).Tag.Get("gorm")); col != "" {
				columns = append(columns, col)
			}
		}

		missing, err := database.MissingColumns(db, tableName, columns)
		if err != nil {
			// A missing table fails here on mysql
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tblReport := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			tblReport.MissingColumns = missing
			tblReport.Status = "error"
			report.Matched = false
		}
		report.Tables[tableName] = tblReport
	}

	return report, nil
}

// parseGormColumn extracts the column name from a GORM tag.
func parseGormColumn(tag string) string {
	parts := strings.Split(tag, ";")
	for _, p := range parts {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
