package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

func (q *QueryBuilder[T]) buildSelect(model any) *bun.SelectQuery {
	query := q.idb.NewSelect().Model(model)

	query = q.applyWheresToSelect(query)

	for _, rel := range q.relations {
		if rel.apply != nil {
			query = query.Relation(rel.name, rel.apply)
		} else {
			query = query.Relation(rel.name)
		}
	}

	for _, order := range q.orders {
		query = query.Order(order.Column + " " + order.Direction)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

// All executes the query and returns all matching records with automatic
// retry.
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // Reset on retry
		return q.buildSelect(&data).Scan(ctx)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with
// automatic retry. A missing row returns (nil, nil).
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		return q.buildSelect(&data).Limit(1).Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records.
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var err error
		count, err = q.applyWheresToSelect(q.idb.NewSelect().Model((*T)(nil))).Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query.
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	count, err := q.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert inserts a new record and returns it.
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	query := q.idb.NewInsert().Model(data)
	if q.conflictColumns != "" {
		query = query.On("CONFLICT (?) DO NOTHING", bun.Safe(q.conflictColumns))
	}
	if _, err := query.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records.
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	if _, err := q.idb.NewInsert().Model(&data).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query. data is either a column map
// or a *T struct.
func (q *QueryBuilder[T]) Update(ctx context.Context, data any) (int, error) {
	start := time.Now()

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	query := q.idb.NewUpdate().Model((*T)(nil))
	query = q.applyWheresToUpdate(query)

	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			query = query.Set("? = ?", bun.Ident(key), value)
		}
	case *T:
		query = q.applyWheresToUpdate(q.idb.NewUpdate().Model(v))
	default:
		return 0, fmt.Errorf("unsupported data type for update: %T", data)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

// Delete deletes records matching the query.
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	query := q.applyWheresToDelete(q.idb.NewDelete().Model((*T)(nil)))

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	rowsAffected, _ := res.RowsAffected()
	return int(rowsAffected), nil
}

func (q *QueryBuilder[T]) applyWheresToSelect(query *bun.SelectQuery) *bun.SelectQuery {
	for _, where := range q.wheres {
		sql, args := where.toSQL()
		query = query.Where(sql, args...)
	}
	return query
}

func (q *QueryBuilder[T]) applyWheresToUpdate(query *bun.UpdateQuery) *bun.UpdateQuery {
	for _, where := range q.wheres {
		sql, args := where.toSQL()
		query = query.Where(sql, args...)
	}
	return query
}

func (q *QueryBuilder[T]) applyWheresToDelete(query *bun.DeleteQuery) *bun.DeleteQuery {
	for _, where := range q.wheres {
		sql, args := where.toSQL()
		query = query.Where(sql, args...)
	}
	return query
}

func (w *WhereClause) toSQL() (string, []any) {
	if w.IsRaw {
		return w.RawSQL, w.RawArgs
	}
	if w.Operator == "IN" {
		return fmt.Sprintf("%s IN (?)", w.Column), []any{bun.In(w.Value)}
	}
	return fmt.Sprintf("%s %s ?", w.Column, w.Operator), []any{w.Value}
}
