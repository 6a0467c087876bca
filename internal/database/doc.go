// Package database provides the SurrealDB access layer for WanderLust.
//
// The Database interface exposes three query methods:
//   - Query: multiple results (SELECT queries returning lists)
//   - QueryOne: a single result (SELECT by record ID)
//   - Execute: no return value (CREATE/UPDATE/DELETE mutations)
//
// Multi-statement writes that must succeed or fail together (review
// creation, review deletion, listing deletion with its review cascade)
// go through TxBuilder, which wraps the accumulated statements in
// BEGIN TRANSACTION / COMMIT TRANSACTION and executes them as one
// query. All statements succeed or fail together at execution time.
//
// Standard errors (ErrNotFound, ErrDuplicate, ErrConnection, ErrQuery)
// are checked with errors.Is in calling code.
package database
