package services

import (
	"testing"

	"invoicing-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMetrics(t *testing.T) {
	invoices := []models.Invoice{
		{Status: models.StatusPaid, Total: 110},
		{Status: models.StatusSent, Total: 220},
		{Status: models.StatusOverdue, Total: 330},
		{Status: models.StatusDraft, Total: 440},
	}
	clients := []models.Client{{Id: "1"}, {Id: "2"}}

	m := CalculateMetrics(invoices, clients)

	assert.Equal(t, 110.0, m.TotalRevenue)
	assert.Equal(t, 220.0, m.PendingAmount)
	assert.Equal(t, 330.0, m.OverdueAmount)
	assert.Equal(t, 2, m.TotalClients)
	assert.Equal(t, 1, m.PaidInvoices)
	assert.Equal(t, 1, m.PendingInvoices)
	assert.Equal(t, 1, m.OverdueInvoices)
	assert.Equal(t, 1, m.DraftInvoices)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m := CalculateMetrics(nil, nil)
	assert.Equal(t, models.Metrics{}, m)
}

func TestCalculateMetricsIgnoresUnknownStatus(t *testing.T) {
	invoices := []models.Invoice{
		{Status: "archived", Total: 999},
		{Status: models.StatusPaid, Total: 10},
	}

	m := CalculateMetrics(invoices, nil)

	assert.Equal(t, 10.0, m.TotalRevenue)
	assert.Zero(t, m.PendingAmount)
	assert.Zero(t, m.OverdueAmount)
	assert.Equal(t, 1, m.PaidInvoices+m.PendingInvoices+m.OverdueInvoices+m.DraftInvoices)
}

func TestCalculateMetricsRoundsSumsAtTheEnd(t *testing.T) {
	invoices := []models.Invoice{
		{Status: models.StatusPaid, Total: 0.105},
		{Status: models.StatusPaid, Total: 0.105},
	}

	m := CalculateMetrics(invoices, nil)

	// 0.21 from the raw sum; rounding each total first would give 0.22.
	assert.Equal(t, 0.21, m.TotalRevenue)
}
