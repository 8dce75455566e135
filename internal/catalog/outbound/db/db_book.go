package db

import (
	"context"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkaramon/book-store-sub000/internal/catalog/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
)

var bookColumns = []string{"id", "author_id", "title", "description", "price_cents", "cover_key", "created_at", "updated_at"}

func qualifiedBookColumns() []string {
	out := make([]string, len(bookColumns))
	for i, c := range bookColumns {
		out[i] = "b." + c
	}
	return out
}

func (s *DB) BookByID(ctx context.Context, id string) (_ *entity.Book, err error) {
	ctx, span := s.startSpan(ctx, "BookByID")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Select(bookColumns...).From("books").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var b entity.Book
	if err := scanBook(s.conn.QueryRow(ctx, query, args...), &b); err != nil {
		return nil, s.mapError(err)
	}
	return &b, nil
}

func (s *DB) BookWithAuthor(ctx context.Context, id string) (_ *entity.BookWithAuthor, err error) {
	ctx, span := s.startSpan(ctx, "BookWithAuthor")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.booksWithAuthors().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	bw, err := scanBookWithAuthor(s.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, s.mapError(err)
	}
	return bw, nil
}

// ListBooks returns matching books, newest first.
func (s *DB) ListBooks(ctx context.Context, f entity.BookFilter) (_ []entity.BookWithAuthor, err error) {
	ctx, span := s.startSpan(ctx, "ListBooks")
	defer func() { s.endSpan(span, err) }()

	q := s.booksWithAuthors()
	if f.Query != "" {
		q = q.Where(sq.ILike{"b.title": "%" + escapeLike(f.Query) + "%"})
	}
	if f.AuthorID != "" {
		q = q.Where(sq.Eq{"b.author_id": f.AuthorID})
	}
	if f.MinPrice > 0 {
		q = q.Where(sq.GtOrEq{"b.price_cents": f.MinPrice})
	}
	if f.MaxPrice > 0 {
		q = q.Where(sq.LtOrEq{"b.price_cents": f.MaxPrice})
	}

	query, args, err := q.OrderBy("b.created_at DESC", "b.id DESC").Limit(f.Limit).Offset(f.Offset).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var out []entity.BookWithAuthor
	for rows.Next() {
		bw, err := scanBookWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *bw)
	}
	return out, s.mapError(rows.Err())
}

// SaveBook inserts b or replaces the stored row with the same id.
func (s *DB) SaveBook(ctx context.Context, b *entity.Book) (err error) {
	ctx, span := s.startSpan(ctx, "SaveBook")
	defer func() { s.endSpan(span, err) }()

	query, args, err := s.sb.Insert("books").
		Columns(bookColumns...).
		Values(b.ID, b.AuthorID, b.Title, b.Description, b.PriceCents, b.CoverKey, b.CreatedAt, b.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price_cents = EXCLUDED.price_cents,
			cover_key = EXCLUDED.cover_key,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, query, args...)
	return s.mapError(err)
}

// UpdateBook writes only the columns set in p.
func (s *DB) UpdateBook(ctx context.Context, id string, p entity.BookPatch) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateBook")
	defer func() { s.endSpan(span, err) }()

	q := s.sb.Update("books").Set("updated_at", p.UpdatedAt).Where(sq.Eq{"id": id})
	if p.Title != nil {
		q = q.Set("title", *p.Title)
	}
	if p.Description != nil {
		q = q.Set("description", *p.Description)
	}
	if p.PriceCents != nil {
		q = q.Set("price_cents", *p.PriceCents)
	}
	if p.CoverKey != nil {
		q = q.Set("cover_key", *p.CoverKey)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return err
	}

	tag, err := s.conn.Exec(ctx, query, args...)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}

func (s *DB) DeleteBook(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteBook")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}

func (s *DB) booksWithAuthors() sq.SelectBuilder {
	return s.sb.Select(slices.Concat(qualifiedBookColumns(), accountdb.Qualified("u"))...).
		From("books b").
		Join("users u ON u.id = b.author_id")
}

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(bookDest(b)...)
}

func scanBookWithAuthor(row pgx.Row) (*entity.BookWithAuthor, error) {
	var bw entity.BookWithAuthor
	author, err := accountdb.ScanAfter(row, bookDest(&bw.Book)...)
	if err != nil {
		return nil, err
	}
	bw.Author = author
	return &bw, nil
}

func bookDest(b *entity.Book) []any {
	return []any{&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.PriceCents, &b.CoverKey, &b.CreatedAt, &b.UpdatedAt}
}

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
