package vectorstore

import (
	"context"
	"database/sql"
	"fmt"

	"mailsense/pkg/types"
)

const schemaVersion = "1"

const schemaSQL = `
CREATE TABLE meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE chunks (
    idx       INTEGER PRIMARY KEY,
    text      TEXT NOT NULL,
    vector    BLOB NOT NULL,
    dimension INTEGER NOT NULL
);
`

// openDatabase opens a sqlite database with the settings the store needs
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Single writer; the store is written once per build and read-only after
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// writeStore creates a fresh store at dbPath holding the full index.
// The caller renames the file into place once this returns.
func writeStore(ctx context.Context, dbPath, model string, chunks []types.Chunk, vectors [][]float32) error {
	db, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"schema_version": schemaVersion,
		"model":          model,
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("write meta %s: %w", k, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO chunks (idx, text, vector, dimension) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, ch := range chunks {
		blob := serializeVector(vectors[i])
		if _, err := stmt.ExecContext(ctx, ch.Index, ch.Text, blob, len(vectors[i])); err != nil {
			return fmt.Errorf("write chunk %d: %w", ch.Index, err)
		}
	}

	return tx.Commit()
}

// readStore loads a persisted index. Any failure to read complete,
// consistent state is reported as ErrCorrupted; the file demonstrably
// exists, so its absence of valid content is data loss, not a cold start.
func readStore(ctx context.Context, dbPath string) (string, []types.Chunk, [][]float32, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer func() { _ = db.Close() }()

	var model string
	err = db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'model'").Scan(&model)
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: missing model metadata: %v", ErrCorrupted, err)
	}

	rows, err := db.QueryContext(ctx, "SELECT idx, text, vector, dimension FROM chunks ORDER BY idx")
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	defer func() { _ = rows.Close() }()

	var (
		chunks  []types.Chunk
		vectors [][]float32
	)
	for rows.Next() {
		var (
			idx       int
			text      string
			blob      []byte
			dimension int
		)
		if err := rows.Scan(&idx, &text, &blob, &dimension); err != nil {
			return "", nil, nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
		vector := deserializeVector(blob)
		if len(vector) != dimension {
			return "", nil, nil, fmt.Errorf("%w: chunk %d vector has %d values, expected %d", ErrCorrupted, idx, len(vector), dimension)
		}
		chunks = append(chunks, types.Chunk{Text: text, Index: idx})
		vectors = append(vectors, vector)
	}
	if err := rows.Err(); err != nil {
		return "", nil, nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if len(chunks) == 0 {
		return "", nil, nil, fmt.Errorf("%w: store holds no chunks", ErrCorrupted)
	}

	return model, chunks, vectors, nil
}
