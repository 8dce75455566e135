package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
)

func (s *DB) UserByID(ctx context.Context, id string) (_ account.User, err error) {
	ctx, span := s.startSpan(ctx, "UserByID")
	defer func() { s.endSpan(span, err) }()

	return s.userWhere(ctx, sq.Eq{"id": id})
}

func (s *DB) UserByEmail(ctx context.Context, email string) (_ account.User, err error) {
	ctx, span := s.startSpan(ctx, "UserByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.userWhere(ctx, sq.Eq{"email": email})
}

func (s *DB) EmailTaken(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "EmailTaken")
	defer func() { s.endSpan(span, err) }()

	var taken bool
	err = s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&taken)
	return taken, s.mapError(err)
}

func (s *DB) userWhere(ctx context.Context, pred sq.Eq) (account.User, error) {
	query, args, err := s.sb.Select(accountdb.Columns...).From("users").Where(pred).ToSql()
	if err != nil {
		return nil, err
	}

	u, err := accountdb.Scan(s.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}
