package db

import (
	"context"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
)

var commentColumns = []string{"id", "book_id", "author_id", "title", "body", "stars", "created_at", "updated_at"}

func commentDest(c *entity.Comment) []any {
	return []any{&c.ID, &c.BookID, &c.AuthorID, &c.Title, &c.Body, &c.Stars, &c.CreatedAt, &c.UpdatedAt}
}

func (s *DB) CommentByID(ctx context.Context, id string) (_ *entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "CommentByID")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Select(commentColumns...).From("comments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var c entity.Comment
	if err := s.conn.QueryRow(ctx, query, args...).Scan(commentDest(&c)...); err != nil {
		return nil, s.mapError(err)
	}
	return &c, nil
}

// CommentsByBook returns the book's comments, newest first.
func (s *DB) CommentsByBook(ctx context.Context, bookID string) (_ []entity.CommentWithAuthor, err error) {
	ctx, span := s.startSpan(ctx, "CommentsByBook")
	defer func() { s.endSpan(span, err) }()

	cols := make([]string, 0, len(commentColumns))
	for _, c := range commentColumns {
		cols = append(cols, "c."+c)
	}

	query, args, err := s.sb.Select(slices.Concat(cols, accountdb.Qualified("u"))...).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(sq.Eq{"c.book_id": bookID}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var out []entity.CommentWithAuthor
	for rows.Next() {
		var cw entity.CommentWithAuthor
		author, err := accountdb.ScanAfter(rows, commentDest(&cw.Comment)...)
		if err != nil {
			return nil, err
		}
		cw.Author = author
		out = append(out, cw)
	}
	return out, s.mapError(rows.Err())
}

// SaveComment inserts c or replaces the stored row with the same id.
func (s *DB) SaveComment(ctx context.Context, c *entity.Comment) (err error) {
	ctx, span := s.startSpan(ctx, "SaveComment")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Insert("comments").
		Columns(commentColumns...).
		Values(c.ID, c.BookID, c.AuthorID, c.Title, c.Body, c.Stars, c.CreatedAt, c.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			stars = EXCLUDED.stars,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, query, args...)
	return s.mapError(err)
}

func (s *DB) DeleteComment(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteComment")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
