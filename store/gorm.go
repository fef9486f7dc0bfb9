package store

import (
	"errors"

	"invoicing-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore adapts a tenant-pinned *gorm.DB (search_path already set to the
// tenant schema, usually the per-request transaction) to the Store contract.
// Writes are replace-style: the collection rows are swapped wholesale, which
// keeps the domain's read-modify-write semantics honest.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetClients() ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.Order("created_at, id").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *GormStore) SetClients(clients []models.Client) error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Client{}).Error; err != nil {
		return err
	}
	if len(clients) == 0 {
		return nil
	}
	return s.db.Create(&clients).Error
}

func (s *GormStore) GetInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.Preload("LineItems").Order("created_at, invoice_number").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *GormStore) SetInvoices(invoices []models.Invoice) error {
	// Line items first; the invoice FK cascade only covers deletes through
	// the association, not a bare table wipe.
	sess := s.db.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := sess.Delete(&models.LineItem{}).Error; err != nil {
		return err
	}
	if err := sess.Delete(&models.Invoice{}).Error; err != nil {
		return err
	}
	if len(invoices) == 0 {
		return nil
	}
	return s.db.Create(&invoices).Error
}

func (s *GormStore) GetSequence() (*models.SequenceCounter, error) {
	var counter models.SequenceCounter
	if err := s.db.First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &counter, nil
}

func (s *GormStore) SetSequence(counter models.SequenceCounter) error {
	// One row per tenant schema.
	counter.ID = 1
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&counter).Error
}
