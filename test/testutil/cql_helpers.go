package testutil

import (
	"context"
	"time"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
)

// SlowCQLSession wraps a CQL session and adds artificial delay to every
// statement. It is useful for exercising context deadlines.
type SlowCQLSession struct {
	Session cql.Session
	Delay   time.Duration
}

// Compile-time assertion that SlowCQLSession implements cql.Session.
var _ cql.Session = (*SlowCQLSession)(nil)

// Query returns a query that waits Delay before execution.
func (s *SlowCQLSession) Query(stmt string, values ...any) cql.Query {
	return &SlowCQLQuery{
		Query: s.Session.Query(stmt, values...),
		Delay: s.Delay,
	}
}

// KeyspaceExists waits Delay, then delegates.
func (s *SlowCQLSession) KeyspaceExists(ctx context.Context, keyspace string) (bool, error) {
	if err := wait(ctx, s.Delay); err != nil {
		return false, err
	}

	return s.Session.KeyspaceExists(ctx, keyspace)
}

// Close closes the wrapped session.
func (s *SlowCQLSession) Close() {
	s.Session.Close()
}

// SlowCQLQuery wraps a query and adds delay before execution.
type SlowCQLQuery struct {
	cql.Query
	Delay time.Duration
}

// Compile-time assertion that SlowCQLQuery implements cql.Query.
var _ cql.Query = (*SlowCQLQuery)(nil)

// Consistency sets the consistency level on the wrapped query.
func (q *SlowCQLQuery) Consistency(c cql.Consistency) cql.Query {
	q.Query = q.Query.Consistency(c)
	return q
}

// ExecContext waits Delay, then executes.
func (q *SlowCQLQuery) ExecContext(ctx context.Context) error {
	if err := wait(ctx, q.Delay); err != nil {
		return err
	}

	return q.Query.ExecContext(ctx)
}

// ScanContext waits Delay, then scans.
func (q *SlowCQLQuery) ScanContext(ctx context.Context, dest ...any) error {
	if err := wait(ctx, q.Delay); err != nil {
		return err
	}

	return q.Query.ScanContext(ctx, dest...)
}

// IterContext waits Delay, then iterates.
func (q *SlowCQLQuery) IterContext(ctx context.Context) cql.Iter {
	if err := wait(ctx, q.Delay); err != nil {
		return NewMockIter(nil, err)
	}

	return q.Query.IterContext(ctx)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
