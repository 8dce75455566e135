package db

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/pkg/instrument"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

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

	u, err := s.users.UserByID(ctx, id)
	return u, s.mapError(err)
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Join(goerror.ErrConflict, err)
		case pgerrcode.ForeignKeyViolation:
			// the referenced book or user was deleted concurrently
			return errors.Join(goerror.ErrNotFound, err)
		}
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("catalog.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
