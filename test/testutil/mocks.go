package testutil

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JCL38-ORANGE/cf-cassandra-example-app/adapter/cql"
)

// qualifiedTableRe extracts keyspace and table from `"ks"."table"`.
var qualifiedTableRe = regexp.MustCompile(`"(\w+)"\."(\w+)"`)

// ErrUnconfiguredTable mirrors the server error for statements against a
// table that does not exist.
var ErrUnconfiguredTable = errors.New("unconfigured table")

// MockCQLSession is an in-memory cql.Session that understands the handful of
// statements the key-value layer issues: the system_schema.tables lookup,
// CREATE TABLE IF NOT EXISTS, DROP TABLE IF EXISTS, INSERT and SELECT by id.
//
// Every executed statement is recorded so tests can assert that no database
// call was made.
type MockCQLSession struct {
	mu         sync.Mutex
	keyspaces  map[string]map[string]map[string]string // keyspace -> table -> id -> value
	statements []string
	queries    []*MockQuery
	closed     bool

	execErr     error
	scanErr     error
	iterErr     error
	keyspaceErr error

	// OnQuery, if set, replaces the built-in statement handling.
	OnQuery func(stmt string, values ...any) cql.Query
}

// Compile-time assertion that MockCQLSession implements cql.Session.
var _ cql.Session = (*MockCQLSession)(nil)

// NewMockCQLSession creates a mock session that knows the given keyspaces.
func NewMockCQLSession(keyspaces ...string) *MockCQLSession {
	s := &MockCQLSession{
		keyspaces: make(map[string]map[string]map[string]string),
	}
	for _, ks := range keyspaces {
		s.keyspaces[ks] = make(map[string]map[string]string)
	}

	return s
}

// AddTable creates a table directly, without recording a statement.
func (s *MockCQLSession) AddTable(keyspace, table string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keyspaces[keyspace] == nil {
		s.keyspaces[keyspace] = make(map[string]map[string]string)
	}
	if s.keyspaces[keyspace][table] == nil {
		s.keyspaces[keyspace][table] = make(map[string]string)
	}
}

// HasTable reports whether the table exists.
func (s *MockCQLSession) HasTable(keyspace, table string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.keyspaces[keyspace][table]

	return ok
}

// Rows returns a copy of a table's rows.
func (s *MockCQLSession) Rows(keyspace, table string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make(map[string]string, len(s.keyspaces[keyspace][table]))
	for k, v := range s.keyspaces[keyspace][table] {
		rows[k] = v
	}

	return rows
}

// Statements returns the executed statements in order.
func (s *MockCQLSession) Statements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.statements...)
}

// StatementCount returns how many statements matched prefix.
func (s *MockCQLSession) StatementCount(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, stmt := range s.statements {
		if strings.HasPrefix(stmt, prefix) {
			n++
		}
	}

	return n
}

// ResetStatements clears the statement log.
func (s *MockCQLSession) ResetStatements() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statements = nil
}

// SetExecError makes every ExecContext call fail with err.
func (s *MockCQLSession) SetExecError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.execErr = err
}

// SetScanError makes every ScanContext call fail with err.
func (s *MockCQLSession) SetScanError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scanErr = err
}

// SetIterError makes every iterator fail with err on Close.
func (s *MockCQLSession) SetIterError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterErr = err
}

// SetKeyspaceError makes KeyspaceExists fail with err.
func (s *MockCQLSession) SetKeyspaceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyspaceErr = err
}

// IsClosed reports whether Close was called.
func (s *MockCQLSession) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Query returns a mock query for the given statement.
func (s *MockCQLSession) Query(stmt string, values ...any) cql.Query {
	if s.OnQuery != nil {
		return s.OnQuery(stmt, values...)
	}

	q := &MockQuery{session: s, stmt: stmt, values: values}

	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	return q
}

// Queries returns the queries built so far whose statement starts with prefix.
func (s *MockCQLSession) Queries(prefix string) []*MockQuery {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*MockQuery
	for _, q := range s.queries {
		if strings.HasPrefix(q.stmt, prefix) {
			out = append(out, q)
		}
	}

	return out
}

// KeyspaceExists reports whether the keyspace is known.
func (s *MockCQLSession) KeyspaceExists(ctx context.Context, keyspace string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keyspaceErr != nil {
		return false, s.keyspaceErr
	}
	_, ok := s.keyspaces[keyspace]

	return ok, nil
}

// Close marks the session closed.
func (s *MockCQLSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *MockCQLSession) record(stmt string) {
	s.statements = append(s.statements, stmt)
}

func (s *MockCQLSession) exec(stmt string, values []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(stmt)
	if s.execErr != nil {
		return s.execErr
	}

	ks, table, err := parseTarget(stmt)
	if err != nil {
		return err
	}
	tables, ok := s.keyspaces[ks]
	if !ok {
		return fmt.Errorf("keyspace %s does not exist", ks)
	}

	switch {
	case strings.HasPrefix(stmt, "CREATE TABLE"):
		if _, exists := tables[table]; !exists {
			tables[table] = make(map[string]string)
		}
	case strings.HasPrefix(stmt, "DROP TABLE"):
		delete(tables, table)
	case strings.HasPrefix(stmt, "INSERT INTO"):
		rows, exists := tables[table]
		if !exists {
			return fmt.Errorf("%w %s", ErrUnconfiguredTable, table)
		}
		if len(values) != 2 {
			return fmt.Errorf("expected 2 bind values, got %d", len(values))
		}
		rows[fmt.Sprint(values[0])] = fmt.Sprint(values[1])
	default:
		return fmt.Errorf("mock session cannot execute %q", stmt)
	}

	return nil
}

func (s *MockCQLSession) scan(stmt string, values []any, dest []any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(stmt)
	if s.scanErr != nil {
		return s.scanErr
	}
	if !strings.HasPrefix(stmt, "SELECT value FROM") || len(values) != 1 || len(dest) != 1 {
		return fmt.Errorf("mock session cannot scan %q", stmt)
	}

	ks, table, err := parseTarget(stmt)
	if err != nil {
		return err
	}
	rows, exists := s.keyspaces[ks][table]
	if !exists {
		return fmt.Errorf("%w %s", ErrUnconfiguredTable, table)
	}

	value, ok := rows[fmt.Sprint(values[0])]
	if !ok {
		return cql.ErrNotFound
	}

	return assign(dest[0], value)
}

func (s *MockCQLSession) iter(stmt string, values []any) *MockIter {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record(stmt)
	if s.iterErr != nil {
		return &MockIter{err: s.iterErr}
	}
	if !strings.Contains(stmt, "system_schema.tables") || len(values) != 2 {
		return &MockIter{err: fmt.Errorf("mock session cannot iterate %q", stmt)}
	}

	ks, _ := values[0].(string)
	table, _ := values[1].(string)
	if _, ok := s.keyspaces[ks][table]; ok {
		return &MockIter{rows: []string{table}}
	}

	return &MockIter{}
}

func parseTarget(stmt string) (string, string, error) {
	m := qualifiedTableRe.FindStringSubmatch(stmt)
	if m == nil {
		return "", "", fmt.Errorf("no qualified table in %q", stmt)
	}

	return m[1], m[2], nil
}

func assign(dest any, value string) error {
	p, ok := dest.(*string)
	if !ok {
		return fmt.Errorf("cannot scan into %T", dest)
	}
	*p = value

	return nil
}

// MockQuery is the query type returned by MockCQLSession.
type MockQuery struct {
	session     *MockCQLSession
	stmt        string
	values      []any
	consistency cql.Consistency
	released    atomic.Bool
}

// Compile-time assertion that MockQuery implements cql.Query.
var _ cql.Query = (*MockQuery)(nil)

// Consistency sets the consistency level.
func (q *MockQuery) Consistency(c cql.Consistency) cql.Query {
	q.consistency = c
	return q
}

// GetConsistency returns the configured consistency level.
func (q *MockQuery) GetConsistency() cql.Consistency {
	return q.consistency
}

// ExecContext executes the statement against the in-memory tables.
func (q *MockQuery) ExecContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return q.session.exec(q.stmt, q.values)
}

// ScanContext reads a single value. Returns cql.ErrNotFound when the key is absent.
func (q *MockQuery) ScanContext(ctx context.Context, dest ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return q.session.scan(q.stmt, q.values, dest)
}

// IterContext answers system_schema.tables lookups.
func (q *MockQuery) IterContext(ctx context.Context) cql.Iter {
	if err := ctx.Err(); err != nil {
		return &MockIter{err: err}
	}

	return q.session.iter(q.stmt, q.values)
}

// Statement returns the CQL statement.
func (q *MockQuery) Statement() string {
	return q.stmt
}

// Values returns the bound values.
func (q *MockQuery) Values() []any {
	return q.values
}

// Release marks the query released.
func (q *MockQuery) Release() {
	q.released.Store(true)
}

// Released reports whether Release was called.
func (q *MockQuery) Released() bool {
	return q.released.Load()
}

// MockIter iterates over single-column string rows.
type MockIter struct {
	rows []string
	pos  int
	err  error
}

// Compile-time assertion that MockIter implements cql.Iter.
var _ cql.Iter = (*MockIter)(nil)

// NewMockIter creates an iterator over rows that fails with err on Close.
func NewMockIter(rows []string, err error) *MockIter {
	return &MockIter{rows: rows, err: err}
}

// Scan reads the next row into dest[0].
func (i *MockIter) Scan(dest ...any) bool {
	if i.err != nil || i.pos >= len(i.rows) {
		return false
	}
	if len(dest) > 0 {
		if err := assign(dest[0], i.rows[i.pos]); err != nil {
			i.err = err
			return false
		}
	}
	i.pos++

	return true
}

// Close returns the iterator error, if any.
func (i *MockIter) Close() error {
	return i.err
}

// MockConnector is a cql.Connector that hands out a fixed session or error
// and counts connection attempts.
type MockConnector struct {
	// Session is returned on success.
	Session cql.Session

	// Err, if set, is returned instead of Session.
	Err error

	// Delay holds every Connect call before it returns. Context cancellation
	// cuts the wait short.
	Delay time.Duration

	calls atomic.Int32

	mu     sync.Mutex
	params cql.ClusterParams
}

// Compile-time assertion that MockConnector implements cql.Connector.
var _ cql.Connector = (*MockConnector)(nil)

// NewMockConnector creates a connector that returns session.
func NewMockConnector(session cql.Session) *MockConnector {
	return &MockConnector{Session: session}
}

// Connect records the attempt and returns Session or Err.
func (c *MockConnector) Connect(ctx context.Context, params cql.ClusterParams) (cql.Session, error) {
	c.calls.Add(1)

	c.mu.Lock()
	c.params = params
	c.mu.Unlock()

	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if c.Err != nil {
		return nil, c.Err
	}

	return c.Session, nil
}

// Calls returns the number of Connect calls.
func (c *MockConnector) Calls() int {
	return int(c.calls.Load())
}

// LastParams returns the parameters of the most recent Connect call.
func (c *MockConnector) LastParams() cql.ClusterParams {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.params
}
