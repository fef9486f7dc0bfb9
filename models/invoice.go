package models

// InvoiceStatus is the finite lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// Valid reports whether s is one of the known lifecycle states.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Invoice is the current state of a commercial document.
//
// ClientId is the authoritative relationship; Client is a point-in-time
// denormalized snapshot of that record, refreshed whenever the client is
// edited (never live-joined). IssueDate and DueDate are YYYY-MM-DD strings
// compared lexically for overdue detection.
type Invoice struct {
	Id            string        `json:"id" gorm:"primaryKey"`
	InvoiceNumber string        `json:"invoice_number" gorm:"uniqueIndex"`
	ClientId      string        `json:"client_id" gorm:"not null;index"`
	Client        Client        `json:"client" gorm:"type:jsonb;serializer:json"`
	Status        InvoiceStatus `json:"status" gorm:"type:varchar(10);index"`
	IssueDate     string        `json:"issue_date" gorm:"type:varchar(10)"`
	DueDate       string        `json:"due_date" gorm:"type:varchar(10)"`

	// Live items (latest state)
	LineItems []LineItem `json:"line_items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal  float64    `json:"subtotal" gorm:"type:numeric(12,2)"`
	Tax       float64    `json:"tax" gorm:"type:numeric(12,2)"`
	Total     float64    `json:"total" gorm:"type:numeric(12,2)"`

	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at" gorm:"type:varchar(32)"`
	UpdatedAt string `json:"updated_at,omitempty" gorm:"type:varchar(32)"`
}

// LineItem is one billable entry. Amount is a derived cache of
// quantity * rate, recomputed on every write of the owning invoice and never
// trusted from caller input.
type LineItem struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	InvoiceID   string  `json:"-" gorm:"index"` // fast join
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
}

// SequenceCounter is the per-tenant invoice numbering state: one row per
// tenant schema. Sequence resets to 1 when the calendar year rolls over.
type SequenceCounter struct {
	ID       uint `json:"-" gorm:"primaryKey"`
	Year     int  `json:"year"`
	Sequence int  `json:"sequence"`
}
