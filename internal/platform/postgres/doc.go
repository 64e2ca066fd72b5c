// Package postgres provides the PostgreSQL implementation of the storage
// interfaces defined in internal/store, built on pgx. It also embeds the
// schema migrations and runs them with goose.
package postgres
