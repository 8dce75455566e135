// Package accountdb reads users from the shared users table for modules that
// need an actor or an author but do not own accounts.
package accountdb

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkaramon/book-store-sub000/internal/pkg/goerror"
	"github.com/pkaramon/book-store-sub000/internal/shared/account"
)

// Columns lists the users columns in Scan order.
var Columns = []string{"id", "kind", "first_name", "last_name", "email", "birth_date", "password_hash", "bio", "created_at"}

// Scan reads one row selected with Columns.
func Scan(row pgx.Row) (account.User, error) {
	return ScanAfter(row)
}

// ScanAfter reads a row whose leading columns go to head and whose remaining
// columns are Columns, as selected by a join.
func ScanAfter(row pgx.Row, head ...any) (account.User, error) {
	var (
		p    account.Profile
		kind string
		bio  string
	)
	dst := append(head, &p.ID, &kind, &p.FirstName, &p.LastName, &p.Email, &p.BirthDate, &p.PasswordHash, &bio, &p.CreatedAt)
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}

	k, err := account.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return account.New(k, p, bio)
}

// Qualified prefixes Columns with a table alias, e.g. "u.id".
func Qualified(alias string) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = alias + "." + c
	}
	return out
}

// Reader loads users by id.
type Reader struct {
	conn *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewReader(conn *pgxpool.Pool) *Reader {
	return &Reader{conn: conn, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

// UserByID returns goerror.ErrNotFound when no user has id.
func (r *Reader) UserByID(ctx context.Context, id string) (account.User, error) {
	query, args, err := r.sb.Select(Columns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	u, err := Scan(r.conn.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, goerror.ErrNotFound
	}
	return u, err
}
