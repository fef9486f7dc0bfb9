package services

import (
	"invoicing-backend/models"
	"invoicing-backend/utils"
)

// CalculateMetrics folds the invoice and client collections into the
// dashboard summary in a single pass. Paid totals feed revenue, sent totals
// pending, overdue totals overdue; drafts are only counted. An unrecognized
// status falls into no bucket. Monetary sums are rounded once at the end.
func CalculateMetrics(invoices []models.Invoice, clients []models.Client) models.Metrics {
	var m models.Metrics
	var revenue, pending, overdue float64

	for _, inv := range invoices {
		switch inv.Status {
		case models.StatusPaid:
			revenue += inv.Total
			m.PaidInvoices++
		case models.StatusSent:
			pending += inv.Total
			m.PendingInvoices++
		case models.StatusOverdue:
			overdue += inv.Total
			m.OverdueInvoices++
		case models.StatusDraft:
			m.DraftInvoices++
		}
	}

	m.TotalRevenue = utils.Round2(revenue)
	m.PendingAmount = utils.Round2(pending)
	m.OverdueAmount = utils.Round2(overdue)
	m.TotalClients = len(clients)
	return m
}
