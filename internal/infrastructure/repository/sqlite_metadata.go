package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avidal/homedrive/internal/domain/entities"
	domain "github.com/avidal/homedrive/internal/domain/repository"
)

// SQLiteMetadata implements the MetadataRepository on a local SQLite
// database.
type SQLiteMetadata struct {
	db *sql.DB
}

// NewSQLiteMetadata opens (or creates) the database at dbPath and
// initializes the schema.
func NewSQLiteMetadata(dbPath string) (*SQLiteMetadata, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping metadata database: %w", err)
	}

	repo := &SQLiteMetadata{db: db}
	if err := repo.initTables(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteMetadata) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS folders (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			parent_id  TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id)`,

		`CREATE TABLE IF NOT EXISTS files (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL UNIQUE,
			original_name TEXT NOT NULL,
			mime_type     TEXT NOT NULL DEFAULT 'application/octet-stream',
			size          INTEGER NOT NULL DEFAULT 0,
			folder_id     TEXT,
			upload_date   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_files_upload_date ON files(upload_date)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create metadata tables: %w", err)
		}
	}

	return nil
}

// nullable converts an optional id to its SQL representation.
func nullable(id *string) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *id, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func (r *SQLiteMetadata) InsertFolder(ctx context.Context, folder *entities.Folder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO folders (id, name, parent_id, created_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.Name, nullable(folder.ParentID), folder.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (r *SQLiteMetadata) GetFolder(ctx context.Context, id string) (*entities.Folder, error) {
	var folder entities.Folder
	var parent sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, parent_id, created_at FROM folders WHERE id = ?`, id).
		Scan(&folder.ID, &folder.Name, &parent, &folder.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	folder.ParentID = fromNullable(parent)
	return &folder, nil
}

func (r *SQLiteMetadata) ListFolders(ctx context.Context, parentID *string) ([]*entities.Folder, error) {
	// NULL is never equal to itself in SQL, so the root listing needs
	// its own predicate.
	query := `SELECT id, name, parent_id, created_at FROM folders WHERE parent_id = ? ORDER BY name ASC`
	args := []interface{}{}
	if parentID == nil {
		query = `SELECT id, name, parent_id, created_at FROM folders WHERE parent_id IS NULL ORDER BY name ASC`
	} else {
		args = append(args, *parentID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	folders := []*entities.Folder{}
	for rows.Next() {
		var folder entities.Folder
		var parent sql.NullString
		if err := rows.Scan(&folder.ID, &folder.Name, &parent, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder row: %w", err)
		}
		folder.ParentID = fromNullable(parent)
		folders = append(folders, &folder)
	}

	return folders, rows.Err()
}

func (r *SQLiteMetadata) RenameFolder(ctx context.Context, id, name string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE folders SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteMetadata) DeleteFolder(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteMetadata) InsertFile(ctx context.Context, file *entities.FileRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO files (id, name, original_name, mime_type, size, folder_id, upload_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		file.ID, file.Name, file.OriginalName, file.MimeType, file.Size,
		nullable(file.FolderID), file.UploadDate)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

func (r *SQLiteMetadata) GetFile(ctx context.Context, id string) (*entities.FileRecord, error) {
	var file entities.FileRecord
	var folder sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, original_name, mime_type, size, folder_id, upload_date
		 FROM files WHERE id = ?`, id).
		Scan(&file.ID, &file.Name, &file.OriginalName, &file.MimeType,
			&file.Size, &folder, &file.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	file.FolderID = fromNullable(folder)
	return &file, nil
}

func (r *SQLiteMetadata) ListFilesInFolder(ctx context.Context, folderID *string) ([]*entities.FileRecord, error) {
	query := `SELECT id, name, original_name, mime_type, size, folder_id, upload_date
		FROM files WHERE folder_id = ? ORDER BY upload_date DESC`
	args := []interface{}{}
	if folderID == nil {
		query = `SELECT id, name, original_name, mime_type, size, folder_id, upload_date
			FROM files WHERE folder_id IS NULL ORDER BY upload_date DESC`
	} else {
		args = append(args, *folderID)
	}

	return r.queryFiles(ctx, query, args...)
}

func (r *SQLiteMetadata) ListFiles(ctx context.Context) ([]*entities.FileRecord, error) {
	return r.queryFiles(ctx,
		`SELECT id, name, original_name, mime_type, size, folder_id, upload_date
		 FROM files ORDER BY upload_date DESC`)
}

func (r *SQLiteMetadata) queryFiles(ctx context.Context, query string, args ...interface{}) ([]*entities.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := []*entities.FileRecord{}
	for rows.Next() {
		var file entities.FileRecord
		var folder sql.NullString
		if err := rows.Scan(&file.ID, &file.Name, &file.OriginalName, &file.MimeType,
			&file.Size, &folder, &file.UploadDate); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		file.FolderID = fromNullable(folder)
		files = append(files, &file)
	}

	return files, rows.Err()
}

func (r *SQLiteMetadata) RenameFile(ctx context.Context, id, originalName string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE files SET original_name = ? WHERE id = ?`, originalName, id)
	if err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteMetadata) DeleteFile(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteMetadata) Stats(ctx context.Context) (*entities.NamespaceStats, error) {
	var stats entities.NamespaceStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`).
		Scan(&stats.Count, &stats.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &stats, nil
}

func (r *SQLiteMetadata) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteMetadata) Close() error {
	return r.db.Close()
}

// requireRow translates "zero rows affected" into ErrNotFound so
// update/delete on a missing id is reported the same way as a lookup.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
