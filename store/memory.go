package store

import (
	"sync"

	"invoicing-backend/models"
)

// MemoryStore keeps every tenant's collections in process memory. It backs the
// service tests and doubles as a demo backend. A single mutex serializes all
// tenants; fine at this scale.
type MemoryStore struct {
	mu       sync.Mutex
	clients  map[string][]models.Client
	invoices map[string][]models.Invoice
	counters map[string]models.SequenceCounter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clients:  make(map[string][]models.Client),
		invoices: make(map[string][]models.Invoice),
		counters: make(map[string]models.SequenceCounter),
	}
}

// Tenant returns a Store view scoped to one tenant id.
func (m *MemoryStore) Tenant(id string) Store {
	return &memoryTenant{parent: m, tenant: id}
}

type memoryTenant struct {
	parent *MemoryStore
	tenant string
}

func (t *memoryTenant) GetClients() ([]models.Client, error) {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	return copyClients(t.parent.clients[t.tenant]), nil
}

func (t *memoryTenant) SetClients(clients []models.Client) error {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.clients[t.tenant] = copyClients(clients)
	return nil
}

func (t *memoryTenant) GetInvoices() ([]models.Invoice, error) {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	return copyInvoices(t.parent.invoices[t.tenant]), nil
}

func (t *memoryTenant) SetInvoices(invoices []models.Invoice) error {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.invoices[t.tenant] = copyInvoices(invoices)
	return nil
}

func (t *memoryTenant) GetSequence() (*models.SequenceCounter, error) {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	ctr, ok := t.parent.counters[t.tenant]
	if !ok {
		return nil, nil
	}
	return &ctr, nil
}

func (t *memoryTenant) SetSequence(counter models.SequenceCounter) error {
	t.parent.mu.Lock()
	defer t.parent.mu.Unlock()
	t.parent.counters[t.tenant] = counter
	return nil
}

// Copies are deep enough that callers cannot alias stored line items.
func copyClients(src []models.Client) []models.Client {
	out := make([]models.Client, len(src))
	copy(out, src)
	return out
}

func copyInvoices(src []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(src))
	for i, inv := range src {
		items := make([]models.LineItem, len(inv.LineItems))
		copy(items, inv.LineItems)
		inv.LineItems = items
		out[i] = inv
	}
	return out
}
