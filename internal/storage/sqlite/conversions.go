package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RealLeviticus/dahextractor/internal/conversion"
	"github.com/RealLeviticus/dahextractor/pkg/logger"
)

// ConversionStorage handles storage of conversion records
type ConversionStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewConversionStorage creates a new SQLite conversion storage
func NewConversionStorage(db *sql.DB, log *logger.Logger) *ConversionStorage {
	storage := &ConversionStorage{
		db:     db,
		logger: log.Named("sqlite-conversions"),
	}

	// Initialize database
	if err := storage.initDB(); err != nil {
		storage.logger.Error("Failed to initialize conversion storage", logger.Error(err))
	}

	return storage
}

// initDB initializes the database tables
func (s *ConversionStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			format TEXT NOT NULL,
			airspace_count INTEGER NOT NULL DEFAULT 0,
			position_count INTEGER NOT NULL DEFAULT 0,
			airport_count INTEGER NOT NULL DEFAULT 0,
			warning_count INTEGER NOT NULL DEFAULT 0,
			valid INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create conversions table: %w", err)
	}

	// Create indexes for performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_format ON conversions(format)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
	}

	for _, indexSQL := range indexes {
		_, err = s.db.Exec(indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create conversion index: %w", err)
		}
	}

	return nil
}

// SaveConversion stores a conversion record
func (s *ConversionStorage) SaveConversion(record *conversion.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions
		(id, source, format, airspace_count, position_count, airport_count, warning_count, valid, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Source,
		record.Format,
		record.AirspaceCount,
		record.PositionCount,
		record.AirportCount,
		record.WarningCount,
		boolToInt(record.Valid),
		string(record.Output),
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion: %w", err)
	}

	return nil
}

// GetConversion returns a single conversion record by ID
func (s *ConversionStorage) GetConversion(id string) (*conversion.Record, error) {
	row := s.db.QueryRow(
		`SELECT id, source, format, airspace_count, position_count, airport_count, warning_count, valid, output, created_at
		FROM conversions
		WHERE id = ?`,
		id,
	)

	record, err := scanConversionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, conversion.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion %s: %w", id, err)
	}

	return record, nil
}

// ListConversions returns recent conversion records, newest first
func (s *ConversionStorage) ListConversions(limit int) ([]*conversion.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, source, format, airspace_count, position_count, airport_count, warning_count, valid, output, created_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent conversions: %w", err)
	}
	defer rows.Close()

	return s.scanConversionRows(rows)
}

// GetConversionsByTimeRange returns conversions within a time range
func (s *ConversionStorage) GetConversionsByTimeRange(startTime, endTime time.Time) ([]*conversion.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, source, format, airspace_count, position_count, airport_count, warning_count, valid, output, created_at
		FROM conversions
		WHERE created_at BETWEEN ? AND ?
		ORDER BY created_at DESC`,
		startTime.Format(time.RFC3339), endTime.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions by time range: %w", err)
	}
	defer rows.Close()

	return s.scanConversionRows(rows)
}

// DeleteConversionsBefore removes records older than the cutoff and returns
// the number deleted
func (s *ConversionStorage) DeleteConversionsBefore(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM conversions WHERE created_at < ?`,
		cutoff.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old conversions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted row count: %w", err)
	}

	return deleted, nil
}

// rowScanner abstracts sql.Row and sql.Rows for the shared scan path
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConversionRows scans database rows into conversion records
func (s *ConversionStorage) scanConversionRows(rows *sql.Rows) ([]*conversion.Record, error) {
	var records []*conversion.Record
	for rows.Next() {
		record, err := scanConversionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// scanConversionRow scans a single row into a conversion record
func scanConversionRow(row rowScanner) (*conversion.Record, error) {
	var record conversion.Record
	var valid int
	var output, createdAt string

	if err := row.Scan(
		&record.ID,
		&record.Source,
		&record.Format,
		&record.AirspaceCount,
		&record.PositionCount,
		&record.AirportCount,
		&record.WarningCount,
		&valid,
		&output,
		&createdAt,
	); err != nil {
		return nil, err
	}

	record.Valid = valid != 0
	record.Output = json.RawMessage(output)

	// Parse timestamp
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	record.CreatedAt = parsed

	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
