package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories and the
// notifier it hands out share the transaction started by Begin.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is a no-op after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	NoteRepository() NoteRepository
	Notifier() Notifier
}
