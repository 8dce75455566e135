package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
	"github.com/pkaramon/book-store-sub000/internal/shared/account/accountdb"
)

// InsertUser adds u. An id or email already stored is a conflict.
func (s *DB) InsertUser(ctx context.Context, u account.User) (err error) {
	ctx, span := s.startSpan(ctx, "InsertUser")
	defer func() { s.endSpan(span, err) }()

	p := u.Info()
	query, args, err := s.sb.Insert("users").
		Columns(accountdb.Columns...).
		Values(p.ID, u.Kind().String(), p.FirstName, p.LastName, p.Email, p.BirthDate, p.PasswordHash, account.BioOf(u), p.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.Exec(ctx, query, args...)
	return s.mapError(err)
}

// UpdateUser rewrites the editable columns of the stored row with u's id.
func (s *DB) UpdateUser(ctx context.Context, u account.User) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer func() { s.endSpan(span, err) }()

	p := u.Info()
	query, args, err := s.sb.Update("users").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("email", p.Email).
		Set("password_hash", p.PasswordHash).
		Set("bio", account.BioOf(u)).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
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

func (s *DB) DeleteUser(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
