package repository

import (
	"context"

	"github.com/kbelaid/chequier/internal/models"

	"gorm.io/gorm"
)

// ChequeRepository defines the interface for cheque register data access
type ChequeRepository interface {
	Create(ctx context.Context, record *models.ChequeRecord) error
	FindByID(ctx context.Context, id uint) (*models.ChequeRecord, error)
	Update(ctx context.Context, record *models.ChequeRecord) error
	List(ctx context.Context, query ListQuery) ([]models.ChequeRecord, error)
	TotalIssued(ctx context.Context) (float64, error)
}

// ListQuery narrows a register listing. Zero values mean no filter.
type ListQuery struct {
	Status string
	Payee  string
	Limit  int
}

// chequeRepository handles database operations for the cheque register
type chequeRepository struct {
	db *gorm.DB
}

// NewChequeRepository creates a new cheque repository
func NewChequeRepository(db *gorm.DB) ChequeRepository {
	return &chequeRepository{db: db}
}

func (r *chequeRepository) Create(ctx context.Context, record *models.ChequeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *chequeRepository) FindByID(ctx context.Context, id uint) (*models.ChequeRecord, error) {
	var record models.ChequeRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *chequeRepository) Update(ctx context.Context, record *models.ChequeRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// List retrieves register entries, most recent first.
func (r *chequeRepository) List(ctx context.Context, query ListQuery) ([]models.ChequeRecord, error) {
	tx := r.db.WithContext(ctx).Model(&models.ChequeRecord{})

	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}
	if query.Payee != "" {
		tx = tx.Where("payee ILIKE ?", "%"+query.Payee+"%")
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var records []models.ChequeRecord
	err := tx.Order("created_at DESC").Find(&records).Error
	return records, err
}

// TotalIssued sums the amounts of every non-voided cheque.
func (r *chequeRepository) TotalIssued(ctx context.Context) (float64, error) {
	var result struct {
		Total float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.ChequeRecord{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("status <> ?", models.ChequeStatusVoided).
		Scan(&result).Error

	return result.Total, err
}
