package pgxcasbin

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

const (
	defaultTableName = "casbin_rule"
	fieldCount       = 6
)

// Commander is the subset of *pgxpool.Pool the adapter needs.
type Commander interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type store struct {
	db        Commander
	sb        sq.StatementBuilderType
	tableName string
	columns   []string
}

func newStore(db Commander) *store {
	return &store{
		db:        db,
		sb:        sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		tableName: defaultTableName,
		columns: append([]string{"ptype"}, lo.Times(fieldCount, func(i int) string {
			return "v" + strconv.Itoa(i)
		})...),
	}
}

func (s *store) setTableName(name string) {
	if name != "" {
		s.tableName = name
	}
}

func (s *store) selectAll(ctx context.Context) ([][]string, error) {
	query, args, err := s.sb.Select(s.columns...).From(s.tableName).OrderBy("ptype", "v0", "v1").ToSql()
	if err != nil {
		return nil, errors.Join(ErrSelectAll, err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrSelectAll, err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		row := make([]string, len(s.columns))
		dest := make([]any, len(row))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Join(ErrScanRow, err)
		}
		result = append(result, trimTrailingEmpty(row))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrSelectAll, err)
	}
	return result, nil
}

func (s *store) insertRow(ctx context.Context, ptype string, rule ...string) error {
	return s.insertWith(ctx, s.db, ptype, rule)
}

func (s *store) insertWith(ctx context.Context, db execer, ptype string, rule []string) error {
	if ptype == "" {
		return ErrEmptyPtype
	}
	normalized, err := normalizeRule(rule)
	if err != nil {
		return err
	}

	query, args, err := s.sb.Insert(s.tableName).
		Columns(s.columns...).
		Values(lo.ToAnySlice(genRule(ptype, normalized))...).
		Suffix("ON CONFLICT (ptype, v0, v1, v2, v3, v4, v5) DO NOTHING").
		ToSql()
	if err != nil {
		return errors.Join(ErrInsertRow, err)
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return errors.Join(ErrInsertRow, err)
	}
	return nil
}

func (s *store) deleteRow(ctx context.Context, ptype string, rule ...string) error {
	return s.deleteWith(ctx, s.db, ptype, rule)
}

func (s *store) deleteWith(ctx context.Context, db execer, ptype string, rule []string) error {
	normalized, err := normalizeRule(rule)
	if err != nil {
		return err
	}

	eq := sq.Eq{"ptype": ptype}
	for i, v := range normalized {
		eq["v"+strconv.Itoa(i)] = v
	}

	query, args, err := s.sb.Delete(s.tableName).Where(eq).ToSql()
	if err != nil {
		return errors.Join(ErrDeleteRow, err)
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		return errors.Join(ErrDeleteRow, err)
	}
	return nil
}

// deleteWhere removes every rule of ptype whose fields starting at startIdx
// match args. Empty args match anything.
func (s *store) deleteWhere(ctx context.Context, ptype string, startIdx int, args ...string) error {
	if len(args) > fieldCount-startIdx {
		return fmt.Errorf("%w: %d > %d", ErrArgsTooLong, len(args), fieldCount-startIdx)
	}

	eq := sq.Eq{"ptype": ptype}
	for i, arg := range args {
		if arg == "" {
			continue
		}
		eq["v"+strconv.Itoa(i+startIdx)] = arg
	}

	query, qargs, err := s.sb.Delete(s.tableName).Where(eq).ToSql()
	if err != nil {
		return errors.Join(ErrDeleteWhere, err)
	}
	if _, err := s.db.Exec(ctx, query, qargs...); err != nil {
		return errors.Join(ErrDeleteWhere, err)
	}
	return nil
}

func (s *store) batchInsert(ctx context.Context, ptype string, rules [][]string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, rule := range rules {
			if err := s.insertWith(ctx, tx, ptype, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) batchDelete(ctx context.Context, ptype string, rules [][]string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, rule := range rules {
			if err := s.deleteWith(ctx, tx, ptype, rule); err != nil {
				return err
			}
		}
		return nil
	})
}

// replaceAll swaps the table contents for rows, each row led by its ptype.
func (s *store) replaceAll(ctx context.Context, rows [][]string) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		query, args, err := s.sb.Delete(s.tableName).ToSql()
		if err != nil {
			return errors.Join(ErrDeleteAll, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errors.Join(ErrDeleteAll, err)
		}

		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			if err := s.insertWith(ctx, tx, row[0], row[1:]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTx, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, ErrRollbackTx, rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.Join(ErrCommitTx, err)
	}
	return nil
}

func genRule(ptype string, rule []string) []string {
	result := make([]string, 1+len(rule))
	result[0] = ptype
	copy(result[1:], rule)
	return result
}

func normalizeRule(rule []string) ([]string, error) {
	if len(rule) > fieldCount {
		return nil, fmt.Errorf("%w: %d > %d", ErrRuleTooLong, len(rule), fieldCount)
	}
	normalized := make([]string, fieldCount)
	copy(normalized, rule)
	return normalized, nil
}

func trimTrailingEmpty(rule []string) []string {
	last := len(rule) - 1
	for last >= 0 && rule[last] == "" {
		last--
	}
	return rule[:last+1]
}
