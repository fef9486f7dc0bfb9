package store

import (
	"testing"

	"invoicing-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTenantIsolation(t *testing.T) {
	mem := NewMemoryStore()
	a := mem.Tenant("a")
	b := mem.Tenant("b")

	require.NoError(t, a.SetClients([]models.Client{{Id: "c1", Name: "Acme"}}))

	got, err := a.GetClients()
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = b.GetClients()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreCopiesOnReadAndWrite(t *testing.T) {
	tenant := NewMemoryStore().Tenant("t")

	in := []models.Invoice{{
		Id:        "i1",
		LineItems: []models.LineItem{{Id: "li1", Description: "Work"}},
	}}
	require.NoError(t, tenant.SetInvoices(in))

	// Mutating the caller's slice after the write must not leak in.
	in[0].LineItems[0].Description = "tampered"

	got, err := tenant.GetInvoices()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Work", got[0].LineItems[0].Description)

	// Mutating a read result must not leak back either.
	got[0].LineItems[0].Description = "tampered again"
	again, err := tenant.GetInvoices()
	require.NoError(t, err)
	assert.Equal(t, "Work", again[0].LineItems[0].Description)
}

func TestMemoryStoreSequenceAbsentIsNil(t *testing.T) {
	tenant := NewMemoryStore().Tenant("t")

	ctr, err := tenant.GetSequence()
	require.NoError(t, err)
	assert.Nil(t, ctr)

	require.NoError(t, tenant.SetSequence(models.SequenceCounter{Year: 2026, Sequence: 3}))
	ctr, err = tenant.GetSequence()
	require.NoError(t, err)
	require.NotNil(t, ctr)
	assert.Equal(t, 2026, ctr.Year)
	assert.Equal(t, 3, ctr.Sequence)
}
