package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building database
// queries. It runs against any bun.IDB, so the same builder works on the
// root handle and inside a transaction.
type QueryBuilder[T any] struct {
	idb bun.IDB

	wheres    []*WhereClause
	orders    []*OrderClause
	relations []*relationSpec

	limitVal  *int
	offsetVal *int

	conflictColumns string

	timeout time.Duration
}

// WhereClause represents a WHERE condition.
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
}

// OrderClause represents an ORDER BY clause.
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction.
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type relationSpec struct {
	name  string
	apply func(*bun.SelectQuery) *bun.SelectQuery
}

// Query creates a new QueryBuilder instance on the root database handle.
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{idb: db.DB}
}

// QueryTx creates a new QueryBuilder instance bound to a transaction.
func QueryTx[T any](tx bun.Tx) *QueryBuilder[T] {
	return &QueryBuilder[T]{idb: tx}
}

// QueryOn creates a new QueryBuilder on an arbitrary bun.IDB. Useful for
// code that runs both standalone and inside a transaction.
func QueryOn[T any](idb bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{idb: idb}
}

// Where adds a simple WHERE condition (column = value).
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
	})
	return q
}

// WhereOp adds a WHERE condition with a custom operator.
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereIn adds a WHERE IN condition.
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereRaw adds a raw WHERE condition.
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause.
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// Limit sets the LIMIT clause.
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause.
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// OnConflictDoNothing makes Insert skip rows that collide on the unique
// constraint over the given columns instead of failing. Unlike catching
// the unique violation after the fact, this keeps a surrounding Postgres
// transaction usable.
func (q *QueryBuilder[T]) OnConflictDoNothing(columns string) *QueryBuilder[T] {
	q.conflictColumns = columns
	return q
}

// Relation specifies a relation to preload.
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, &relationSpec{name: name})
	return q
}

// RelationWith specifies a relation to preload with a customized subquery,
// e.g. to order a has-many collection.
func (q *QueryBuilder[T]) RelationWith(name string, apply func(*bun.SelectQuery) *bun.SelectQuery) *QueryBuilder[T] {
	q.relations = append(q.relations, &relationSpec{name: name, apply: apply})
	return q
}

// Timeout sets a timeout for the query.
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

func (q *QueryBuilder[T]) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}
