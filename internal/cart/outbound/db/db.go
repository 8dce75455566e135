package db

import (
	"context"
	"errors"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/cart/entity"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DB reads the catalogue for carts. It never writes.
type DB struct {
	conn  *pgxpool.Pool
	sb    sq.StatementBuilderType
	users *accountdb.Reader
	ins   instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn:  conn,
		sb:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		users: accountdb.NewReader(conn),
		ins:   ins,
	}
}

func (s *DB) UserByID(ctx context.Context, id string) (_ account.User, err error) {
	ctx, span := s.startSpan(ctx, "UserByID")
	defer func() { s.endSpan(span, err) }()

	return s.users.UserByID(ctx, id)
}

func (s *DB) BookExists(ctx context.Context, id string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "BookExists")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// BooksWithAuthors returns one line per id, in the order of ids. Ids of
// books that no longer exist are skipped; repeated ids repeat the line.
func (s *DB) BooksWithAuthors(ctx context.Context, ids []string) (_ []entity.Line, err error) {
	ctx, span := s.startSpan(ctx, "BooksWithAuthors")
	defer func() { s.endSpan(span, err) }()

	if len(ids) == 0 {
		return nil, nil
	}

	cols := slices.Concat([]string{"b.id", "b.author_id", "b.title", "b.price_cents", "b.cover_key"}, accountdb.Qualified("u"))
	query, args, err := s.sb.Select(cols...).
		From("books b").
		Join("users u ON u.id = b.author_id").
		Where(sq.Eq{"b.id": lo.Uniq(ids)}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []entity.Line
	for rows.Next() {
		var b entity.Book
		author, err := accountdb.ScanAfter(rows, &b.ID, &b.AuthorID, &b.Title, &b.PriceCents, &b.CoverKey)
		if err != nil {
			return nil, err
		}
		found = append(found, entity.Line{Book: b, Author: author})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID := lo.KeyBy(found, func(l entity.Line) string { return l.Book.ID })
	return lo.FilterMap(ids, func(id string, _ int) (entity.Line, bool) {
		l, ok := byID[id]
		return l, ok
	}), nil
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("cart.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
