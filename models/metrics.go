package models

// Metrics is the dashboard summary: a pure fold over the invoice and client
// collections, recomputed on demand and never persisted.
type Metrics struct {
	TotalRevenue    float64 `json:"total_revenue"`
	PendingAmount   float64 `json:"pending_amount"`
	OverdueAmount   float64 `json:"overdue_amount"`
	TotalClients    int     `json:"total_clients"`
	PaidInvoices    int     `json:"paid_invoices"`
	PendingInvoices int     `json:"pending_invoices"`
	OverdueInvoices int     `json:"overdue_invoices"`
	DraftInvoices   int     `json:"draft_invoices"`
}
