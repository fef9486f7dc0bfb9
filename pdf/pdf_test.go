package pdf

import (
	"testing"

	"invoicing-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	inv := models.Invoice{
		InvoiceNumber: "INV-2026-001",
		Status:        models.StatusSent,
		IssueDate:     "2026-09-01",
		DueDate:       "2026-10-01",
		Client: models.Client{
			Name:    "Acme Corp",
			Company: "Acme Holdings",
			Email:   "billing@acme.test",
		},
		LineItems: []models.LineItem{
			{Description: "Design work", Quantity: 2, Rate: 100, Amount: 200},
			{Description: "Hosting", Quantity: 1, Rate: 50, Amount: 50},
		},
		Subtotal: 250,
		Tax:      25,
		Total:    275,
		Notes:    "Payable within 30 days.",
	}

	out, err := Render(inv)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
