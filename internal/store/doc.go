// Package store defines interfaces for data persistence operations, the
// pgx-shaped DBTX abstraction they run against, the shared error taxonomy
// and a transaction helper. Implementations live in internal/platform/postgres.
package store
