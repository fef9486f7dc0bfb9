package services

import (
	"testing"

	"invoicing-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentClientsOrdering(t *testing.T) {
	clients := []models.Client{
		{Id: "a", CreatedAt: "2026-01-01"},
		{Id: "b", CreatedAt: "2026-01-03"},
		{Id: "c", CreatedAt: "2026-01-02"},
	}

	got := RecentClients(clients, 4)

	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Id)
	assert.Equal(t, "c", got[1].Id)
	assert.Equal(t, "a", got[2].Id)

	// Input order untouched.
	assert.Equal(t, "a", clients[0].Id)
}

func TestRecentInvoicesTruncatesAndDefaults(t *testing.T) {
	invoices := make([]models.Invoice, 0, 7)
	for _, day := range []string{"01", "02", "03", "04", "05", "06", "07"} {
		invoices = append(invoices, models.Invoice{Id: day, CreatedAt: "2026-02-" + day})
	}

	got := RecentInvoices(invoices, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "07", got[0].Id)
	assert.Equal(t, "05", got[2].Id)

	// Zero limit falls back to the default of 5.
	got = RecentInvoices(invoices, 0)
	assert.Len(t, got, 5)
}

func TestRecentInvoicesStableOnTies(t *testing.T) {
	invoices := []models.Invoice{
		{Id: "first", CreatedAt: "2026-02-01"},
		{Id: "second", CreatedAt: "2026-02-01"},
	}

	got := RecentInvoices(invoices, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Id)
	assert.Equal(t, "second", got[1].Id)
}
