package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

// DatasetStoreImpl keeps the single loaded dataset in a SQL database.
type DatasetStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.DatasetStore = &DatasetStoreImpl{} // Compile-time check

// NewDatasetStore creates a new DatasetStore with the specified backend.
// The schema is migrated to the latest version on open.
func NewDatasetStore(backend schema.DatabaseBackend, connStr string) (contract.DatasetStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for a disabled store
		return &DatasetStoreImpl{db: nil, backend: backend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := ensureSchema(db, backend, connStr); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create store tables: %w", err)
	}

	return &DatasetStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// openDB opens a database handle for the backend without verifying the connection.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, "sqlite", nil

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		db, err := sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, "mysql", nil

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, "pgx", nil

	default:
		return nil, "", fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}

// ReplaceRecords swaps the stored dataset for records in one transaction.
// Only one dataset is ever stored; the previous one is removed with its import row.
func (ds *DatasetStoreImpl) ReplaceRecords(ctx context.Context, sourceName string, records []schema.Record) error {
	// Skip for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return nil
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	for _, table := range []string{recordsTable, importsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, ds.backend))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}

	insertQuery := fmt.Sprintf(
		"INSERT INTO %s (record_date, country, region, cases, deaths, recovered) VALUES (%s)",
		quoteTableName(recordsTable, ds.backend), ds.placeholders(6))
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, schema.FormatDate(r.Date), r.Country, r.Region, r.Cases, r.Deaths, r.Recovered); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	importQuery := fmt.Sprintf(
		"INSERT INTO %s (source_name, imported_at, row_count) VALUES (%s)",
		quoteTableName(importsTable, ds.backend), ds.placeholders(3))
	if _, err := tx.ExecContext(ctx, importQuery, sourceName, formatTime(time.Now().UTC(), ds.backend), len(records)); err != nil {
		return fmt.Errorf("failed to insert import row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset: %w", err)
	}

	zap.L().Info("dataset stored",
		zap.String("backend", string(ds.backend)),
		zap.String("source", sourceName),
		zap.Int("records", len(records)))
	return nil
}

// LoadRecords returns the stored dataset in insertion order.
func (ds *DatasetStoreImpl) LoadRecords(ctx context.Context) ([]schema.Record, error) {
	// Nothing is stored for NoneBackend
	if ds.backend == schema.NoneBackend || ds.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT record_date, country, region, cases, deaths, recovered FROM %s ORDER BY row_id",
		quoteTableName(recordsTable, ds.backend))
	rows, err := ds.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Record
	for rows.Next() {
		var (
			dateStr string
			record  schema.Record
		)
		if err := rows.Scan(&dateStr, &record.Country, &record.Region, &record.Cases, &record.Deaths, &record.Recovered); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		record.Date, err = schema.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse record_date %q: %w", dateStr, err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return results, nil
}

// GetStatus returns status information about the dataset store.
func (ds *DatasetStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ds.backend),
		Connected: ds.db != nil,
	}

	if ds.backend == schema.NoneBackend || ds.db == nil {
		return status, nil
	}

	records := quoteTableName(recordsTable, ds.backend)

	// Get total records and distinct countries
	countQuery := fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT country) FROM %s", records)
	if err := ds.db.QueryRow(countQuery).Scan(&status.TotalRecords, &status.Countries); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	if status.TotalRecords == 0 {
		return status, nil
	}

	// Dates are stored as YYYY-MM-DD so string order is date order
	var firstStr, lastStr string
	boundsQuery := fmt.Sprintf("SELECT MIN(record_date), MAX(record_date) FROM %s", records)
	if err := ds.db.QueryRow(boundsQuery).Scan(&firstStr, &lastStr); err != nil {
		return status, fmt.Errorf("failed to get date bounds: %w", err)
	}
	var err error
	if status.FirstDate, err = schema.ParseDate(firstStr); err != nil {
		return status, fmt.Errorf("failed to parse first date: %w", err)
	}
	if status.LastDate, err = schema.ParseDate(lastStr); err != nil {
		return status, fmt.Errorf("failed to parse last date: %w", err)
	}

	// Get the latest import
	importQuery := fmt.Sprintf("SELECT source_name, imported_at FROM %s ORDER BY import_id DESC LIMIT 1",
		quoteTableName(importsTable, ds.backend))
	row := ds.db.QueryRow(importQuery)

	switch ds.backend {
	case schema.SQLiteBackend:
		var importedStr string
		if err := row.Scan(&status.SourceName, &importedStr); err != nil {
			return status, fmt.Errorf("failed to get import info: %w", err)
		}
		importedAt, err := time.Parse(time.RFC3339Nano, importedStr)
		if err != nil {
			return status, fmt.Errorf("failed to parse import time: %w", err)
		}
		status.ImportedAt = importedAt
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&status.SourceName, &status.ImportedAt); err != nil {
			return status, fmt.Errorf("failed to get import info: %w", err)
		}
	}

	return status, nil
}

// Close closes the underlying connection.
func (ds *DatasetStoreImpl) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// placeholders returns n comma-separated parameter placeholders for the backend.
func (ds *DatasetStoreImpl) placeholders(n int) string {
	out := make([]byte, 0, n*4)
	for i := 1; i <= n; i++ {
		if i > 1 {
			out = append(out, ", "...)
		}
		switch ds.backend {
		case schema.PostgreSQLBackend:
			out = fmt.Appendf(out, "$%d", i)
		default: // SQLite and MySQL
			out = append(out, '?')
		}
	}
	return string(out)
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
