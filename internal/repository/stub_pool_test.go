package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubPool struct {
	execCount int
	execSQL   string
	execArgs  []any
	execErr   error

	queryArgs []any
	queryErr  error
	rowsData  [][]any

	row stubRow
}

func (s *stubPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.execCount++
	s.execSQL = sql
	s.execArgs = args
	return pgconn.CommandTag{}, s.execErr
}

func (s *stubPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.queryArgs = args
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	dataCopy := make([][]any, len(s.rowsData))
	for i := range s.rowsData {
		dataCopy[i] = append([]any(nil), s.rowsData[i]...)
	}
	return &stubRows{data: dataCopy}, nil
}

func (s *stubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.row
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.data) {
		return fmt.Errorf("invalid scan index")
	}
	return assign(r.data[r.idx-1], dest)
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(row []any, dest []any) error {
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d columns, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			*ptr = row[i].(string)
		case *int:
			*ptr = row[i].(int)
		case *int64:
			*ptr = row[i].(int64)
		case *[]byte:
			if row[i] != nil {
				*ptr = row[i].([]byte)
			}
		case *time.Time:
			*ptr = row[i].(time.Time)
		default:
			return fmt.Errorf("unsupported dest type %T", d)
		}
	}
	return nil
}
