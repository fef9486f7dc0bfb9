package services

import (
	"strings"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/store"
	"invoicing-backend/utils"

	"github.com/google/uuid"
)

// DefaultTaxRate applies when no rate is configured, in percent.
const DefaultTaxRate = 10.0

// LineItemInput is one caller-supplied billable entry. Any amount the caller
// sends is ignored; it is always recomputed from quantity and rate.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// InvoiceInput is the caller-supplied shape for create and update.
type InvoiceInput struct {
	ClientId  string          `json:"client_id"`
	Status    string          `json:"status"`
	IssueDate string          `json:"issue_date"`
	DueDate   string          `json:"due_date"`
	LineItems []LineItemInput `json:"line_items"`
	Notes     string          `json:"notes"`
}

// InvoiceService implements the invoice repository logic: validation, totals,
// lifecycle transitions and duplication over a tenant-scoped store.
type InvoiceService struct {
	store   store.Store
	seq     *Sequencer
	taxRate float64
	now     func() time.Time
}

// NewInvoiceService builds the service with the configured tax rate in
// percent; pass a negative rate to use the default. Zero means tax-free.
func NewInvoiceService(s store.Store, seq *Sequencer, taxRate float64) *InvoiceService {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &InvoiceService{store: s, seq: seq, taxRate: taxRate, now: time.Now}
}

func (s *InvoiceService) today() string {
	return s.now().UTC().Format(utils.DateLayout)
}

// Validate checks the user-correctable input rules: a client reference and at
// least one line item with a non-blank description. A status, when supplied,
// must be a known lifecycle state.
func (s *InvoiceService) Validate(in InvoiceInput) *ValidationError {
	fields := make(map[string]string)
	if strings.TrimSpace(in.ClientId) == "" {
		fields["clientId"] = "client is required"
	}
	described := false
	for _, item := range in.LineItems {
		if strings.TrimSpace(item.Description) != "" {
			described = true
			break
		}
	}
	if len(in.LineItems) == 0 || !described {
		fields["lineItems"] = "at least one line item with a description is required"
	}
	if in.Status != "" && !models.InvoiceStatus(in.Status).Valid() {
		fields["status"] = "unknown status"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// CalculateTotals computes subtotal, tax and total for the given items.
// Each figure is rounded to cents independently rather than derived from the
// already-rounded line amounts, so the subtotal can drift from the sum of the
// displayed line amounts by up to a cent. Known approximation, kept on
// purpose; see DESIGN.md.
func CalculateTotals(items []models.LineItem, taxRate float64) (subtotal, tax, total float64) {
	var sum float64
	for _, item := range items {
		sum += item.Quantity * item.Rate
	}
	subtotal = utils.Round2(sum)
	tax = utils.Round2(subtotal * taxRate / 100)
	total = utils.Round2(subtotal + tax)
	return subtotal, tax, total
}

func (s *InvoiceService) buildLineItems(in []LineItemInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(in))
	for _, li := range in {
		items = append(items, models.LineItem{
			Id:          uuid.NewString(),
			Description: strings.TrimSpace(li.Description),
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      utils.Round2(li.Quantity * li.Rate),
		})
	}
	return items
}

func resolveClient(clients []models.Client, id string) (models.Client, error) {
	for _, c := range clients {
		if c.Id == id {
			return c, nil
		}
	}
	// The caller is responsible for supplying a valid, current client set;
	// a miss here is an integrity violation, not bad user input.
	return models.Client{}, &NotFoundError{Entity: "client", ID: id}
}

func (s *InvoiceService) List() ([]models.Invoice, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return nil, storageErr(err)
	}
	return invoices, nil
}

func (s *InvoiceService) Get(id string) (models.Invoice, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	for _, inv := range invoices {
		if inv.Id == id {
			return inv, nil
		}
	}
	return models.Invoice{}, &NotFoundError{Entity: "invoice", ID: id}
}

// Create validates the input, resolves the client, rebuilds line items with
// fresh ids and cached amounts, computes totals, assigns the next invoice
// number and appends the invoice to the tenant collection. Status defaults to
// draft, issue date to today.
func (s *InvoiceService) Create(in InvoiceInput) (models.Invoice, error) {
	if v := s.Validate(in); v != nil {
		return models.Invoice{}, v
	}

	clients, err := s.store.GetClients()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	client, err := resolveClient(clients, strings.TrimSpace(in.ClientId))
	if err != nil {
		return models.Invoice{}, err
	}

	invoices, err := s.store.GetInvoices()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}

	items := s.buildLineItems(in.LineItems)
	subtotal, tax, total := CalculateTotals(items, s.taxRate)

	number, err := s.seq.NextNumber()
	if err != nil {
		return models.Invoice{}, err
	}

	status := models.StatusDraft
	if in.Status != "" {
		status = models.InvoiceStatus(in.Status)
	}
	issueDate := strings.TrimSpace(in.IssueDate)
	if issueDate == "" {
		issueDate = s.today()
	}

	invoice := models.Invoice{
		Id:            uuid.NewString(),
		InvoiceNumber: number,
		ClientId:      client.Id,
		Client:        client,
		Status:        status,
		IssueDate:     issueDate,
		DueDate:       strings.TrimSpace(in.DueDate),
		LineItems:     items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     utils.Timestamp(),
	}

	invoices = append(invoices, invoice)
	if err := s.store.SetInvoices(invoices); err != nil {
		return models.Invoice{}, storageErr(err)
	}
	return invoice, nil
}

// Update replaces the invoice content from the input while preserving Id,
// InvoiceNumber and CreatedAt unconditionally. Line items are fully replaced,
// never merged. An omitted status keeps the existing one.
func (s *InvoiceService) Update(id string, in InvoiceInput) (models.Invoice, error) {
	if v := s.Validate(in); v != nil {
		return models.Invoice{}, v
	}

	clients, err := s.store.GetClients()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	client, err := resolveClient(clients, strings.TrimSpace(in.ClientId))
	if err != nil {
		return models.Invoice{}, err
	}

	invoices, err := s.store.GetInvoices()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	idx := -1
	for i, inv := range invoices {
		if inv.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Invoice{}, &NotFoundError{Entity: "invoice", ID: id}
	}
	existing := invoices[idx]

	items := s.buildLineItems(in.LineItems)
	subtotal, tax, total := CalculateTotals(items, s.taxRate)

	status := existing.Status
	if in.Status != "" {
		status = models.InvoiceStatus(in.Status)
	}

	updated := models.Invoice{
		Id:            existing.Id,
		InvoiceNumber: existing.InvoiceNumber,
		ClientId:      client.Id,
		Client:        client,
		Status:        status,
		IssueDate:     strings.TrimSpace(in.IssueDate),
		DueDate:       strings.TrimSpace(in.DueDate),
		LineItems:     items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     utils.Timestamp(),
	}

	invoices[idx] = updated
	if err := s.store.SetInvoices(invoices); err != nil {
		return models.Invoice{}, storageErr(err)
	}
	return updated, nil
}

func (s *InvoiceService) Delete(id string) error {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return storageErr(err)
	}
	idx := -1
	for i, inv := range invoices {
		if inv.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Entity: "invoice", ID: id}
	}
	invoices = append(invoices[:idx], invoices[idx+1:]...)
	if err := s.store.SetInvoices(invoices); err != nil {
		return storageErr(err)
	}
	return nil
}

// MarkAsSent flips the invoice to sent without re-validating anything else.
func (s *InvoiceService) MarkAsSent(id string) (models.Invoice, error) {
	return s.setStatus(id, models.StatusSent)
}

// MarkAsPaid flips the invoice to paid. Paying after the due date clears an
// overdue state; nothing transitions out of paid.
func (s *InvoiceService) MarkAsPaid(id string) (models.Invoice, error) {
	return s.setStatus(id, models.StatusPaid)
}

func (s *InvoiceService) setStatus(id string, status models.InvoiceStatus) (models.Invoice, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	for i := range invoices {
		if invoices[i].Id == id {
			invoices[i].Status = status
			invoices[i].UpdatedAt = utils.Timestamp()
			if err := s.store.SetInvoices(invoices); err != nil {
				return models.Invoice{}, storageErr(err)
			}
			return invoices[i], nil
		}
	}
	return models.Invoice{}, &NotFoundError{Entity: "invoice", ID: id}
}

// CheckOverdue scans the whole collection and flips every sent invoice whose
// due date lies strictly before today to overdue. It is a batch scan invoked
// by callers (dashboard load), not a timer, and is idempotent: a second run
// changes nothing. The collection is persisted only when a transition
// happened. Returns the (possibly updated) collection.
func (s *InvoiceService) CheckOverdue() ([]models.Invoice, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return nil, storageErr(err)
	}
	today := s.today()
	changed := false
	for i := range invoices {
		if invoices[i].Status == models.StatusSent &&
			invoices[i].DueDate != "" && invoices[i].DueDate < today {
			invoices[i].Status = models.StatusOverdue
			changed = true
		}
	}
	if changed {
		if err := s.store.SetInvoices(invoices); err != nil {
			return nil, storageErr(err)
		}
	}
	return invoices, nil
}

// Duplicate copies an invoice under a new id and invoice number. The client
// snapshot is re-resolved against the current client collection, line items
// are copied with fresh ids, status is forced back to draft and the issue
// date becomes today. The due date is carried over unchanged and the totals
// and notes are copied verbatim since the items are identical copies.
func (s *InvoiceService) Duplicate(id string) (models.Invoice, error) {
	invoices, err := s.store.GetInvoices()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	var original *models.Invoice
	for i := range invoices {
		if invoices[i].Id == id {
			original = &invoices[i]
			break
		}
	}
	if original == nil {
		return models.Invoice{}, &NotFoundError{Entity: "invoice", ID: id}
	}

	clients, err := s.store.GetClients()
	if err != nil {
		return models.Invoice{}, storageErr(err)
	}
	client, err := resolveClient(clients, original.ClientId)
	if err != nil {
		return models.Invoice{}, err
	}

	number, err := s.seq.NextNumber()
	if err != nil {
		return models.Invoice{}, err
	}

	items := make([]models.LineItem, 0, len(original.LineItems))
	for _, li := range original.LineItems {
		items = append(items, models.LineItem{
			Id:          uuid.NewString(),
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
		})
	}

	copyInv := models.Invoice{
		Id:            uuid.NewString(),
		InvoiceNumber: number,
		ClientId:      client.Id,
		Client:        client,
		Status:        models.StatusDraft,
		IssueDate:     s.today(),
		DueDate:       original.DueDate,
		LineItems:     items,
		Subtotal:      original.Subtotal,
		Tax:           original.Tax,
		Total:         original.Total,
		Notes:         original.Notes,
		CreatedAt:     utils.Timestamp(),
	}

	invoices = append(invoices, copyInv)
	if err := s.store.SetInvoices(invoices); err != nil {
		return models.Invoice{}, storageErr(err)
	}
	return copyInv, nil
}

// SearchInvoices is a case-insensitive substring match against the invoice
// number, the snapshot client name and the snapshot company. An empty or
// whitespace query returns the input unchanged.
func SearchInvoices(query string, invoices []models.Invoice) []models.Invoice {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return invoices
	}
	var out []models.Invoice
	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(inv.Client.Name), q) ||
			(inv.Client.Company != "" && strings.Contains(strings.ToLower(inv.Client.Company), q)) {
			out = append(out, inv)
		}
	}
	if out == nil {
		out = []models.Invoice{}
	}
	return out
}

// FilterByStatus keeps invoices with an exactly matching status. "all" and
// the empty string return the input unchanged.
func FilterByStatus(status string, invoices []models.Invoice) []models.Invoice {
	if status == "" || status == "all" {
		return invoices
	}
	var out []models.Invoice
	for _, inv := range invoices {
		if string(inv.Status) == status {
			out = append(out, inv)
		}
	}
	if out == nil {
		out = []models.Invoice{}
	}
	return out
}
