package services

import (
	"fmt"
	"time"

	"invoicing-backend/models"
	"invoicing-backend/store"
)

// NumberFormat selects how invoice numbers are rendered.
type NumberFormat string

const (
	// FormatAnnual segments numbering by calendar year: INV-2026-001.
	// The sequence resets to 1 when the year rolls over.
	FormatAnnual NumberFormat = "annual"
	// FormatSimple is a single all-time sequence: INV-0001. No yearly reset.
	FormatSimple NumberFormat = "simple"
)

// Sequencer assigns unique, ordered invoice numbers for one tenant. The
// counter is loaded and saved through the store on every call, never cached in
// process, so two instances sharing a backend stay consistent under the
// sequential-caller assumption.
type Sequencer struct {
	store  store.Store
	format NumberFormat
	now    func() time.Time
}

func NewSequencer(s store.Store, format NumberFormat) *Sequencer {
	if format != FormatSimple {
		format = FormatAnnual
	}
	return &Sequencer{store: s, format: format, now: time.Now}
}

// NextNumber advances the tenant counter and returns the formatted number.
// The counter is persisted before the number is handed out; a failed invoice
// write afterwards burns a number but never duplicates one.
func (s *Sequencer) NextNumber() (string, error) {
	counter, err := s.store.GetSequence()
	if err != nil {
		return "", storageErr(err)
	}
	year := s.now().UTC().Year()
	if counter == nil {
		counter = &models.SequenceCounter{Year: year, Sequence: 0}
	}

	next := counter.Sequence + 1
	if s.format == FormatAnnual && counter.Year != year {
		next = 1
	}

	if err := s.store.SetSequence(models.SequenceCounter{Year: year, Sequence: next}); err != nil {
		return "", storageErr(err)
	}

	if s.format == FormatSimple {
		return fmt.Sprintf("INV-%04d", next), nil
	}
	return fmt.Sprintf("INV-%d-%03d", year, next), nil
}
