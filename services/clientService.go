package services

import (
	"strings"

	"invoicing-backend/models"
	"invoicing-backend/store"
	"invoicing-backend/utils"

	"github.com/google/uuid"
)

// ClientInput is the caller-supplied shape for create and update.
type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ClientService implements the client repository logic over a tenant-scoped
// store.
type ClientService struct {
	store store.Store
}

func NewClientService(s store.Store) *ClientService {
	return &ClientService{store: s}
}

// Validate checks presence of name and email after trimming. Format checks
// beyond presence belong to the HTTP edge.
func (s *ClientService) Validate(in ClientInput) *ValidationError {
	fields := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "email is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (s *ClientService) List() ([]models.Client, error) {
	clients, err := s.store.GetClients()
	if err != nil {
		return nil, storageErr(err)
	}
	return clients, nil
}

func (s *ClientService) Get(id string) (models.Client, error) {
	clients, err := s.store.GetClients()
	if err != nil {
		return models.Client{}, storageErr(err)
	}
	for _, c := range clients {
		if c.Id == id {
			return c, nil
		}
	}
	return models.Client{}, &NotFoundError{Entity: "client", ID: id}
}

// Create assigns a fresh id, trims string fields and stamps CreatedAt.
func (s *ClientService) Create(in ClientInput) (models.Client, error) {
	if v := s.Validate(in); v != nil {
		return models.Client{}, v
	}
	clients, err := s.store.GetClients()
	if err != nil {
		return models.Client{}, storageErr(err)
	}

	client := models.Client{
		Id:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: utils.Timestamp(),
	}

	clients = append(clients, client)
	if err := s.store.SetClients(clients); err != nil {
		return models.Client{}, storageErr(err)
	}
	return client, nil
}

// Update overwrites every field from the input except Id and CreatedAt, which
// are preserved unconditionally, and refreshes the denormalized client
// snapshot on every invoice referencing the record.
func (s *ClientService) Update(id string, in ClientInput) (models.Client, error) {
	if v := s.Validate(in); v != nil {
		return models.Client{}, v
	}
	clients, err := s.store.GetClients()
	if err != nil {
		return models.Client{}, storageErr(err)
	}

	idx := -1
	for i, c := range clients {
		if c.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Client{}, &NotFoundError{Entity: "client", ID: id}
	}

	updated := models.Client{
		Id:        clients[idx].Id,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: clients[idx].CreatedAt,
		UpdatedAt: utils.Timestamp(),
	}
	clients[idx] = updated
	if err := s.store.SetClients(clients); err != nil {
		return models.Client{}, storageErr(err)
	}

	if err := s.refreshSnapshots(updated); err != nil {
		return models.Client{}, err
	}
	return updated, nil
}

// refreshSnapshots rewrites the cached client copy on invoices that reference
// the client. The snapshot has a documented staleness contract: it is updated
// here, on client edit, and nowhere else.
func (s *ClientService) refreshSnapshots(client models.Client) error {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return storageErr(err)
	}
	changed := false
	for i := range invoices {
		if invoices[i].ClientId == client.Id {
			invoices[i].Client = client
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.store.SetInvoices(invoices); err != nil {
		return storageErr(err)
	}
	return nil
}

// Delete removes the client. Dependent invoices are not blocked or cascaded;
// callers are expected to run HasDependentInvoices first and warn the user.
func (s *ClientService) Delete(id string) error {
	clients, err := s.store.GetClients()
	if err != nil {
		return storageErr(err)
	}
	idx := -1
	for i, c := range clients {
		if c.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Entity: "client", ID: id}
	}
	clients = append(clients[:idx], clients[idx+1:]...)
	if err := s.store.SetClients(clients); err != nil {
		return storageErr(err)
	}
	return nil
}

// HasDependentInvoices is the advisory pre-delete check: it reports whether
// any invoice references the client, and how many.
func (s *ClientService) HasDependentInvoices(id string) (bool, int, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return false, 0, storageErr(err)
	}
	count := 0
	for _, inv := range invoices {
		if inv.ClientId == id {
			count++
		}
	}
	return count > 0, count, nil
}

// SearchClients is a case-insensitive substring match against name, email and
// company. An empty query returns the input unchanged.
func SearchClients(query string, clients []models.Client) []models.Client {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clients
	}
	var out []models.Client
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			(c.Company != "" && strings.Contains(strings.ToLower(c.Company), q)) {
			out = append(out, c)
		}
	}
	if out == nil {
		out = []models.Client{}
	}
	return out
}
