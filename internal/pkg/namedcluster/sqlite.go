package namedcluster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS named_clusters (
	name_key   TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	shim_id    TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

type SQLiteService struct {
	db *sql.DB
}

var _ Service = (*SQLiteService)(nil)

// OpenSQLite opens (and creates if needed) the registry database at file.
func OpenSQLite(ctx context.Context, file string) (*SQLiteService, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create registry dir: %w", err)
	}

	// ref. https://github.com/mattn/go-sqlite3?tab=readme-ov-file#connection-string
	conns := "file:" + file + "?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL&_txlock=immediate"
	db, err := sql.Open("sqlite3", conns)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite3 database: %w (%q)", err, conns)
	}

	// single connection for writing
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create named_clusters table: %w", err)
	}
	return &SQLiteService{db: db}, nil
}

func (s *SQLiteService) Template() *NamedCluster {
	return &NamedCluster{StorageScheme: "hdfs"}
}

func (s *SQLiteService) List(ctx context.Context) ([]*NamedCluster, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM named_clusters ORDER BY name_key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*NamedCluster
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		nc, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

func (s *SQLiteService) Contains(ctx context.Context, name string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM named_clusters WHERE name_key = ?", Key(name)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteService) GetByName(ctx context.Context, name string) (*NamedCluster, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM named_clusters WHERE name_key = ?", Key(name)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (s *SQLiteService) Save(ctx context.Context, nc *NamedCluster) error {
	if Key(nc.Name) == "" {
		return errors.New("named cluster has no name")
	}
	nc.LastModified = time.Now().UTC()
	data, err := json.Marshal(nc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO named_clusters (name_key, name, shim_id, data, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name_key) DO UPDATE SET
	name = excluded.name,
	shim_id = excluded.shim_id,
	data = excluded.data,
	updated_at = excluded.updated_at`,
		Key(nc.Name), nc.Name, nc.ShimIdentifier, string(data), nc.LastModified.Unix())
	if err != nil {
		return fmt.Errorf("failed to save named cluster %q: %w", nc.Name, err)
	}
	return nil
}

func (s *SQLiteService) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM named_clusters WHERE name_key = ?", Key(name))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

func (s *SQLiteService) Close() error {
	return s.db.Close()
}

func decode(data string) (*NamedCluster, error) {
	nc := &NamedCluster{}
	if err := json.Unmarshal([]byte(data), nc); err != nil {
		return nil, fmt.Errorf("failed to decode named cluster: %w", err)
	}
	return nc, nil
}
