// Package repository implements SurrealDB-backed data access for listings,
// reviews, and users. Multi-record writes (review create/delete, listing
// cascade delete) run as single transactions built with database.TxBuilder.
package repository
