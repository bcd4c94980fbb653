package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostRecord is the persistence-layer projection of a post. The writer is a
// foreign key to users; once set it is never reassigned.
type PostRecord struct {
	ID        int64
	Title     string
	Content   string
	WriterID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	FindByID(ctx context.Context, id int64) (*PostRecord, error)
	Create(ctx context.Context, title, content string, writerID int64) (int64, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

// PgPostRepository implements PostRepository using pgxpool.
type PgPostRepository struct {
	db *pgxpool.Pool
}

func NewPgPostRepository(db *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{db: db}
}

func (r *PgPostRepository) FindByID(ctx context.Context, id int64) (*PostRecord, error) {
	const q = `SELECT id, title, content, writer_id, created_at, updated_at FROM posts WHERE id=$1`
	var p PostRecord
	if err := r.db.QueryRow(ctx, q, id).Scan(&p.ID, &p.Title, &p.Content, &p.WriterID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgPostRepository) Create(ctx context.Context, title, content string, writerID int64) (int64, error) {
	const q = `INSERT INTO posts (title, content, writer_id) VALUES ($1,$2,$3) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, q, title, content, writerID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgPostRepository) Update(ctx context.Context, id int64, title, content string) error {
	const q = `UPDATE posts SET title=$1, content=$2, updated_at=now() WHERE id=$3`
	tag, err := r.db.Exec(ctx, q, title, content, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgPostRepository) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id=$1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
