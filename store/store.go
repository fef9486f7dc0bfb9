// Package store defines the persistence adapter the domain services read and
// write through. A Store is already bound to one tenant when it is handed to a
// service; cross-tenant isolation happens at construction time (schema pinning
// for the GORM adapter, map partitioning for the in-memory one).
//
// Reads return whole collections and writes replace them; the domain layer is
// a read-modify-write cycle over these and must not assume any transactional
// guarantee beyond single-collection atomicity.
package store

import "invoicing-backend/models"

// Store is the tenant-scoped persistence contract.
type Store interface {
	GetClients() ([]models.Client, error)
	SetClients(clients []models.Client) error

	GetInvoices() ([]models.Invoice, error)
	SetInvoices(invoices []models.Invoice) error

	// GetSequence returns nil (no error) when the tenant has no counter yet.
	GetSequence() (*models.SequenceCounter, error)
	SetSequence(counter models.SequenceCounter) error
}
