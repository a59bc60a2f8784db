// Package v1 provides an adapter for gocql v1 (github.com/gocql/gocql).
package v1

import (
	"context"
	"errors"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
	"github.com/gocql/gocql"
)

// Session wraps a gocql v1 session.
type Session struct {
	session *gocql.Session
}

// Compile-time assertion that Session implements cql.Session.
var _ cql.Session = (*Session)(nil)

// NewSession creates a new v1 adapter from a gocql session.
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - *Session: An adapter implementing cql.Session
func NewSession(session *gocql.Session) *Session {
	return &Session{session: session}
}

// WrapSession is an alias for NewSession that wraps a gocql v1 session.
//
// This is useful when the application already owns a gocql session and wants
// the key-value layer to reuse it.
//
// Example:
//
//	cluster := gocql.NewCluster("127.0.0.1")
//	session, _ := cluster.CreateSession()
//	connector := cql.ConnectorFunc(func(context.Context, cql.ClusterParams) (cql.Session, error) {
//	    return v1.WrapSession(session), nil
//	})
//
// Parameters:
//   - session: A gocql.Session instance
//
// Returns:
//   - cql.Session: An adapter implementing cql.Session interface
func WrapSession(session *gocql.Session) cql.Session {
	return NewSession(session)
}

// Query creates a new query for the given statement.
//
// gocql prepares and caches statements that carry bind values, so repeated
// calls with the same text reuse the prepared statement.
//
// Parameters:
//   - stmt: CQL statement with ? placeholders
//   - values: Values to bind to placeholders
//
// Returns:
//   - cql.Query: A query builder
func (s *Session) Query(stmt string, values ...any) cql.Query {
	return &Query{
		query:     s.session.Query(stmt, values...),
		statement: stmt,
	}
}

// KeyspaceExists reports whether the cluster metadata knows the keyspace.
func (s *Session) KeyspaceExists(_ context.Context, keyspace string) (bool, error) {
	_, err := s.session.KeyspaceMetadata(keyspace)
	if errors.Is(err, gocql.ErrKeyspaceDoesNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Close terminates the session.
func (s *Session) Close() {
	s.session.Close()
}

// Query wraps a gocql v1 query.
type Query struct {
	query     *gocql.Query
	statement string
}

// Compile-time assertion that Query implements cql.Query.
var _ cql.Query = (*Query)(nil)

// Consistency sets the consistency level.
func (q *Query) Consistency(c cql.Consistency) cql.Query {
	q.query = q.query.Consistency(ToGocqlConsistency(c))
	return q
}

// ExecContext executes the query with context.
func (q *Query) ExecContext(ctx context.Context) error {
	return q.query.WithContext(ctx).Exec()
}

// ScanContext executes and scans a single row with context.
func (q *Query) ScanContext(ctx context.Context, dest ...any) error {
	err := q.query.WithContext(ctx).Scan(dest...)
	if errors.Is(err, gocql.ErrNotFound) {
		return cql.ErrNotFound
	}

	return err
}

// IterContext returns an iterator for results with context.
func (q *Query) IterContext(ctx context.Context) cql.Iter {
	return &Iter{iter: q.query.WithContext(ctx).Iter()}
}

// Statement returns the CQL statement.
func (q *Query) Statement() string {
	return q.statement
}

// Release returns the query to the pool.
func (q *Query) Release() {
	q.query.Release()
}

// Iter wraps a gocql v1 iterator.
type Iter struct {
	iter *gocql.Iter
}

// Compile-time assertion that Iter implements cql.Iter.
var _ cql.Iter = (*Iter)(nil)

// Scan reads the next row.
func (i *Iter) Scan(dest ...any) bool {
	if i.iter == nil {
		return false
	}

	return i.iter.Scan(dest...)
}

// Close closes the iterator.
func (i *Iter) Close() error {
	if i.iter == nil {
		return nil
	}

	return i.iter.Close()
}
