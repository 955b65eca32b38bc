package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// HealthStatus summarises a database health check.
type HealthStatus string

const (
	HealthHealthy       HealthStatus = "healthy"
	HealthMissingTables HealthStatus = "missing_tables"
	HealthError         HealthStatus = "error"
)

// TableHealth describes one expected table.
type TableHealth struct {
	Exists   bool  `json:"exists"`
	RowCount int64 `json:"row_count"`
}

// HealthReport is the result of CheckHealth.
type HealthReport struct {
	Status            HealthStatus           `json:"status"`
	Tables            map[string]TableHealth `json:"tables"`
	MissingTables     []string               `json:"missing_tables,omitempty"`
	ActiveConnections int32                  `json:"active_connections"`
	Error             string                 `json:"error,omitempty"`
	CheckedAt         time.Time              `json:"checked_at"`
}

// CheckHealth reports, per expected table, whether it exists and how many
// rows it holds. It only reads.
func CheckHealth(ctx context.Context, e *Executor) *HealthReport {
	report := &HealthReport{
		Tables:    make(map[string]TableHealth, len(Tables)),
		CheckedAt: time.Now().UTC(),
	}
	defer func() {
		report.ActiveConnections = e.Pool().ActiveCount()
	}()

	rows, err := QueryMany(ctx, e, KindSelect, RowToMap,
		`SELECT table_name::text AS table_name
		 FROM information_schema.tables
		 WHERE table_schema = current_schema() AND table_name::text = ANY($1::text[])`,
		Tables,
	)
	if err != nil {
		log.Error().Err(err).Msg("Health check failed")
		report.Status = HealthError
		report.Error = "failed to inspect tables"
		return report
	}

	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		if name, ok := row["table_name"].(string); ok {
			present[name] = true
		}
	}

	report.Status = HealthHealthy
	for _, table := range Tables {
		if !present[table] {
			report.Tables[table] = TableHealth{}
			report.MissingTables = append(report.MissingTables, table)
			report.Status = HealthMissingTables
			continue
		}
		// Table names come from the fixed Tables list, never from callers.
		count, err := QueryOne(ctx, e, KindSelect, pgx.RowTo[int64],
			"SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize())
		if err != nil {
			log.Error().Err(err).Str("table", table).Msg("Health check failed")
			report.Status = HealthError
			report.Error = "failed to count rows"
			return report
		}
		report.Tables[table] = TableHealth{Exists: true, RowCount: *count}
	}
	return report
}

// Repair re-runs EnsureSchema to recreate whatever is missing. Existing
// tables and rows are left untouched.
func Repair(ctx context.Context, e *Executor) bool {
	if err := EnsureSchema(ctx, e); err != nil {
		log.Error().Err(err).Msg("Database repair failed")
		return false
	}
	log.Info().Msg("Database repair completed")
	return true
}
