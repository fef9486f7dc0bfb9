package services

import (
	"sort"

	"invoicing-backend/models"
)

const (
	defaultRecentInvoices = 5
	defaultRecentClients  = 4
)

// RecentInvoices returns up to limit invoices, newest first by CreatedAt
// string order. The input is never mutated; ties keep their incoming order
// (stable sort, no secondary key).
func RecentInvoices(invoices []models.Invoice, limit int) []models.Invoice {
	if limit <= 0 {
		limit = defaultRecentInvoices
	}
	out := make([]models.Invoice, len(invoices))
	copy(out, invoices)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentClients is the client-side counterpart of RecentInvoices.
func RecentClients(clients []models.Client, limit int) []models.Client {
	if limit <= 0 {
		limit = defaultRecentClients
	}
	out := make([]models.Client, len(clients))
	copy(out, clients)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
