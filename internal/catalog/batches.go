package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BatchIDLength is the number of hex characters in a batch identifier.
const BatchIDLength = 18

// Batch is one described source folder.
type Batch struct {
	ID                string
	SourceDir         string
	OutputPath        string
	RecordCount       int
	ChecksumAlgorithm string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DigitalObject is one checksummed file of a batch.
type DigitalObject struct {
	Path      string
	Checksum  string
	Algorithm string
	SizeBytes int64
}

const batchColumns = "id, source_dir, output_path, record_count, checksum_algorithm, created_at, updated_at"

// NewBatchID returns a fresh 18 character hex identifier.
func NewBatchID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:BatchIDLength]
}

// BatchIDFor returns the identifier bound to sourceDir, creating the batch
// on first use. reused reports whether the folder was described before.
func (s *Store) BatchIDFor(ctx context.Context, sourceDir string) (id string, reused bool, err error) {
	dir := filepath.Clean(sourceDir)
	existing, err := s.FindBatchBySource(ctx, dir)
	if err != nil {
		return "", false, err
	}
	if existing != nil {
		return existing.ID, true, nil
	}

	id = NewBatchID()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx,
			`INSERT INTO batches (id, source_dir, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			id, dir, now, now)
		return execErr
	})
	if err != nil {
		return "", false, fmt.Errorf("insert batch: %w", err)
	}
	return id, false, nil
}

// RecordBatch stores the outcome of a define run and replaces the batch's
// digital objects with objects.
func (s *Store) RecordBatch(ctx context.Context, batch Batch, objects []DigitalObject) error {
	if strings.TrimSpace(batch.ID) == "" {
		return errors.New("batch id is required")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	dir := filepath.Clean(batch.SourceDir)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO batches (id, source_dir, output_path, record_count, checksum_algorithm, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)
             ON CONFLICT(id) DO UPDATE SET
                 output_path = excluded.output_path,
                 record_count = excluded.record_count,
                 checksum_algorithm = excluded.checksum_algorithm,
                 updated_at = excluded.updated_at`,
			batch.ID, dir, nullableString(batch.OutputPath), batch.RecordCount,
			nullableString(batch.ChecksumAlgorithm), now, now,
		); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM digital_objects WHERE batch_id = ?`, batch.ID); err != nil {
			return fmt.Errorf("clear digital objects: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO digital_objects (batch_id, path, checksum, algorithm, size_bytes, recorded_at)
             VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare digital object insert: %w", err)
		}
		defer stmt.Close()
		for _, obj := range objects {
			if obj.Checksum == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, batch.ID, obj.Path, obj.Checksum, obj.Algorithm, obj.SizeBytes, now); err != nil {
				return fmt.Errorf("insert digital object %s: %w", filepath.Base(obj.Path), err)
			}
		}
		return nil
	})
}

// FindBatchBySource returns the batch for sourceDir, or nil when none exists.
func (s *Store) FindBatchBySource(ctx context.Context, sourceDir string) (*Batch, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE source_dir = ?`, filepath.Clean(sourceDir))
	batch, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find batch: %w", err)
	}
	return batch, nil
}

// ListBatches returns every batch, most recently updated first.
func (s *Store) ListBatches(ctx context.Context) ([]Batch, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var batches []Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, *batch)
	}
	return batches, rows.Err()
}

// LookupChecksum returns the most recently recorded checksum for path.
func (s *Store) LookupChecksum(ctx context.Context, path string) (DigitalObject, bool, error) {
	ctx = ensureContext(ctx)
	var obj DigitalObject
	err := s.db.QueryRowContext(ctx,
		`SELECT path, checksum, algorithm, size_bytes FROM digital_objects
         WHERE path = ? ORDER BY recorded_at DESC LIMIT 1`, path,
	).Scan(&obj.Path, &obj.Checksum, &obj.Algorithm, &obj.SizeBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return DigitalObject{}, false, nil
	}
	if err != nil {
		return DigitalObject{}, false, fmt.Errorf("lookup checksum: %w", err)
	}
	return obj, true, nil
}

func scanBatch(scanner interface{ Scan(dest ...any) error }) (*Batch, error) {
	var (
		batch      Batch
		outputPath sql.NullString
		algorithm  sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&batch.ID,
		&batch.SourceDir,
		&outputPath,
		&batch.RecordCount,
		&algorithm,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	batch.OutputPath = outputPath.String
	batch.ChecksumAlgorithm = algorithm.String
	batch.CreatedAt = parseTimestamp(createdRaw)
	batch.UpdatedAt = parseTimestamp(updatedRaw)
	return &batch, nil
}
