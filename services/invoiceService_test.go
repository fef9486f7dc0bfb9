package services

import (
	"testing"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvoiceFixture(t *testing.T) (*InvoiceService, *ClientService, models.Client) {
	t.Helper()
	tenant := store.NewMemoryStore().Tenant("t1")
	seq := NewSequencer(tenant, FormatAnnual)
	seq.now = fixedYear(2026)
	clientSvc := NewClientService(tenant)
	invoiceSvc := NewInvoiceService(tenant, seq, DefaultTaxRate)

	client, err := clientSvc.Create(ClientInput{Name: "Acme", Email: "billing@acme.test", Company: "Acme Corp"})
	require.NoError(t, err)
	return invoiceSvc, clientSvc, client
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.LineItem
		taxRate      float64
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "two items at ten percent",
			items: []models.LineItem{
				{Quantity: 2, Rate: 100},
				{Quantity: 1, Rate: 50},
			},
			taxRate:      10,
			wantSubtotal: 250,
			wantTax:      25,
			wantTotal:    275,
		},
		{
			name:         "empty items",
			items:        nil,
			taxRate:      10,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name:         "half cent rounds away from zero",
			items:        []models.LineItem{{Quantity: 1, Rate: 1.005}},
			taxRate:      0,
			wantSubtotal: 1.01,
			wantTax:      0,
			wantTotal:    1.01,
		},
		{
			// Subtotal is rounded from the raw sum, not re-summed from the
			// rounded line amounts: 1.005 + 1.005 = 2.01, while the cached
			// line amounts round to 1.01 each and would sum to 2.02. The cent
			// of drift is the documented approximation.
			name: "independent rounding may drift from line amounts",
			items: []models.LineItem{
				{Quantity: 1, Rate: 1.005},
				{Quantity: 1, Rate: 1.005},
			},
			taxRate:      0,
			wantSubtotal: 2.01,
			wantTax:      0,
			wantTotal:    2.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := CalculateTotals(tt.items, tt.taxRate)
			assert.Equal(t, tt.wantSubtotal, subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}

func TestInvoiceValidate(t *testing.T) {
	svc, _, client := newInvoiceFixture(t)

	tests := []struct {
		name       string
		input      InvoiceInput
		wantFields []string
	}{
		{
			name: "valid",
			input: InvoiceInput{
				ClientId:  client.Id,
				LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 10}},
			},
		},
		{
			name:       "missing client",
			input:      InvoiceInput{LineItems: []LineItemInput{{Description: "Work"}}},
			wantFields: []string{"clientId"},
		},
		{
			name:       "no line items",
			input:      InvoiceInput{ClientId: client.Id},
			wantFields: []string{"lineItems"},
		},
		{
			name: "only blank descriptions",
			input: InvoiceInput{
				ClientId:  client.Id,
				LineItems: []LineItemInput{{Description: "   ", Quantity: 1, Rate: 10}},
			},
			wantFields: []string{"lineItems"},
		},
		{
			name: "unknown status",
			input: InvoiceInput{
				ClientId:  client.Id,
				Status:    "archived",
				LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 10}},
			},
			wantFields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := svc.Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			for _, f := range tt.wantFields {
				assert.Contains(t, v.Fields, f)
			}
		})
	}
}

func TestInvoiceCreateDefaults(t *testing.T) {
	svc, _, client := newInvoiceFixture(t)

	inv, err := svc.Create(InvoiceInput{
		ClientId: client.Id,
		DueDate:  "2026-10-01",
		LineItems: []LineItemInput{
			{Description: " Design ", Quantity: 2, Rate: 100},
			{Description: "Hosting", Quantity: 1, Rate: 50},
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, inv.Id)
	assert.Equal(t, "INV-2026-001", inv.InvoiceNumber)
	assert.Equal(t, models.StatusDraft, inv.Status)
	assert.Equal(t, client.Id, inv.ClientId)
	assert.Equal(t, client.Name, inv.Client.Name)
	assert.NotEmpty(t, inv.IssueDate)
	assert.Equal(t, "2026-10-01", inv.DueDate)
	assert.NotEmpty(t, inv.CreatedAt)

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "Design", inv.LineItems[0].Description)
	assert.NotEmpty(t, inv.LineItems[0].Id)
	assert.Equal(t, 200.0, inv.LineItems[0].Amount)
	assert.Equal(t, 250.0, inv.Subtotal)
	assert.Equal(t, 25.0, inv.Tax)
	assert.Equal(t, 275.0, inv.Total)
}

func TestInvoiceCreateUnknownClientIsIntegrityError(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)

	_, err := svc.Create(InvoiceInput{
		ClientId:  "ghost",
		LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 10}},
	})
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "client", nfe.Entity)

	invoices, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, invoices, "failed create must not leave partial state")
}

func TestInvoiceUpdatePreservesIdentity(t *testing.T) {
	svc, _, client := newInvoiceFixture(t)

	created, err := svc.Create(InvoiceInput{
		ClientId:  client.Id,
		LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(created.Id, InvoiceInput{
		ClientId:  client.Id,
		DueDate:   "2026-12-24",
		LineItems: []LineItemInput{{Description: "More work", Quantity: 3, Rate: 40}},
	})
	require.NoError(t, err)

	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, created.Status, updated.Status, "omitted status keeps the existing one")

	// Full line-item replace, no merging.
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, "More work", updated.LineItems[0].Description)
	assert.NotEqual(t, created.LineItems[0].Id, updated.LineItems[0].Id)
	assert.Equal(t, 120.0, updated.Subtotal)
	assert.Equal(t, 12.0, updated.Tax)
	assert.Equal(t, 132.0, updated.Total)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	svc, _, client := newInvoiceFixture(t)

	inv, err := svc.Create(InvoiceInput{
		ClientId:  client.Id,
		LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, inv.Status)

	sent, err := svc.MarkAsSent(inv.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSent, sent.Status)

	paid, err := svc.MarkAsPaid(inv.Id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)

	_, err = svc.MarkAsPaid("missing")
	var nfe *NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestCheckOverdue(t *testing.T) {
	svc, _, client := newInvoiceFixture(t)
	svc.now = func() time.Time {
		return time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)
	}

	mk := func(due string, status models.InvoiceStatus) string {
		inv, err := svc.Create(InvoiceInput{
			ClientId:  client.Id,
			DueDate:   due,
			Status:    string(status),
			LineItems: []LineItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
		})
		require.NoError(t, err)
		return inv.Id
	}

	pastSent := mk("2026-08-15", models.StatusSent)
	todaySent := mk("2026-09-01", models.StatusSent) // due today is not overdue
	futureSent := mk("2026-12-01", models.StatusSent)
	pastDraft := mk("2026-08-15", models.StatusDraft)
	pastPaid := mk("2026-08-15", models.StatusPaid)
	noDue := mk("", models.StatusSent)

	result, err := svc.CheckOverdue()
	require.NoError(t, err)

	byId := make(map[string]models.InvoiceStatus, len(result))
	for _, inv := range result {
		byId[inv.Id] = inv.Status
	}
	assert.Equal(t, models.StatusOverdue, byId[pastSent])
	assert.Equal(t, models.StatusSent, byId[todaySent])
	assert.Equal(t, models.StatusSent, byId[futureSent])
	assert.Equal(t, models.StatusDraft, byId[pastDraft])
	assert.Equal(t, models.StatusPaid, byId[pastPaid])
	assert.Equal(t, models.StatusSent, byId[noDue])

	// Idempotent on a second run.
	again, err := svc.CheckOverdue()
	require.NoError(t, err)
	assert.Equal(t, result, again)

	// Paying an overdue invoice still clears it.
	paid, err := svc.MarkAsPaid(pastSent)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, paid.Status)
}

func TestInvoiceDuplicate(t *testing.T) {
	svc, clientSvc, client := newInvoiceFixture(t)

	original, err := svc.Create(InvoiceInput{
		ClientId: client.Id,
		DueDate:  "2026-03-01",
		Status:   string(models.StatusPaid),
		Notes:    "thanks",
		LineItems: []LineItemInput{
			{Description: "Design", Quantity: 2, Rate: 100},
			{Description: "Hosting", Quantity: 1, Rate: 50},
		},
	})
	require.NoError(t, err)

	// Client edited between create and duplicate: the copy must carry the
	// current snapshot, not the original one.
	_, err = clientSvc.Update(client.Id, ClientInput{Name: "Acme Renamed", Email: client.Email})
	require.NoError(t, err)

	dup, err := svc.Duplicate(original.Id)
	require.NoError(t, err)

	assert.NotEqual(t, original.Id, dup.Id)
	assert.NotEqual(t, original.InvoiceNumber, dup.InvoiceNumber)
	assert.Equal(t, models.StatusDraft, dup.Status)
	assert.Equal(t, original.ClientId, dup.ClientId)
	assert.Equal(t, "Acme Renamed", dup.Client.Name)
	assert.Equal(t, original.DueDate, dup.DueDate, "due date carries over unchanged")
	assert.Equal(t, original.Subtotal, dup.Subtotal)
	assert.Equal(t, original.Tax, dup.Tax)
	assert.Equal(t, original.Total, dup.Total)
	assert.Equal(t, original.Notes, dup.Notes)

	require.Len(t, dup.LineItems, len(original.LineItems))
	for i := range dup.LineItems {
		assert.NotEqual(t, original.LineItems[i].Id, dup.LineItems[i].Id)
		assert.Equal(t, original.LineItems[i].Description, dup.LineItems[i].Description)
		assert.Equal(t, original.LineItems[i].Quantity, dup.LineItems[i].Quantity)
		assert.Equal(t, original.LineItems[i].Rate, dup.LineItems[i].Rate)
		assert.Equal(t, original.LineItems[i].Amount, dup.LineItems[i].Amount)
	}
}

func TestSearchInvoices(t *testing.T) {
	invoices := []models.Invoice{
		{Id: "1", InvoiceNumber: "INV-2026-001", Client: models.Client{Name: "Acme", Company: "Acme Corp"}},
		{Id: "2", InvoiceNumber: "INV-2026-002", Client: models.Client{Name: "Bob"}},
	}

	assert.Len(t, SearchInvoices("", invoices), 2)
	assert.Len(t, SearchInvoices("   ", invoices), 2)

	got := SearchInvoices("002", invoices)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Id)

	got = SearchInvoices("corp", invoices)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Id)

	assert.Empty(t, SearchInvoices("nothing", invoices))
}

func TestFilterByStatus(t *testing.T) {
	invoices := []models.Invoice{
		{Id: "1", Status: models.StatusDraft},
		{Id: "2", Status: models.StatusSent},
		{Id: "3", Status: models.StatusSent},
	}

	assert.Len(t, FilterByStatus("all", invoices), 3)
	assert.Len(t, FilterByStatus("", invoices), 3)
	assert.Len(t, FilterByStatus("sent", invoices), 2)
	assert.Empty(t, FilterByStatus("paid", invoices))
}
