// Package commands contains the admin and customer actions that change an
// order. Every command follows the same pattern: constructor validation, a
// transaction around read-modify-write, and a single commit at the end.
// Calls to external collaborators happen before the commit, so a failed call
// leaves the order exactly as it was.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// NoteRepoFactory provides access to the note repository within a transaction.
	NoteRepoFactory interface {
		NoteRepository() ports.NoteRepository
	}

	// NotifierFactory provides the transactional notification outbox.
	NotifierFactory interface {
		Notifier() ports.Notifier
	}

	// OrderUoW manages transactions for commands that only touch the order record.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NoteUoW manages transactions for appending notes.
	NoteUoW interface {
		TxManager
		OrderRepoFactory
		NoteRepoFactory
	}

	// NoteUoWFactory creates new note unit of work instances.
	NoteUoWFactory interface {
		Create() NoteUoW
	}

	// NotifyingUoW is used by commands that also queue a customer email; the
	// email is only delivered when the order change commits.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   notifier := uow.Notifier()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	NotifyingUoW interface {
		TxManager
		OrderRepoFactory
		NotifierFactory
	}

	// NotifyingUoWFactory creates new notifying unit of work instances.
	NotifyingUoWFactory interface {
		Create() NotifyingUoW
	}
)
