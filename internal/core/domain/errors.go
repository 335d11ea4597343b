package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid tool arguments.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotSelect indicates a SQL query that is not a SELECT statement.
	// The gateway is read-only and rejects everything else before any
	// network call is made.
	ErrNotSelect = errors.New("only SELECT queries are allowed")

	// ErrUnknownColumn indicates the SQL engine rejected a column name.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUpstream indicates the external service returned a failure
	// response. The wrapped message carries the upstream detail verbatim.
	ErrUpstream = errors.New("upstream error")
)
