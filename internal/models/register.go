package models

import (
	"time"
)

// ChequeRecord is one entry of the persistent cheque register.
type ChequeRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	AmountWords string    `gorm:"not null" json:"amount_words"`
	Payee       string    `gorm:"not null;index" json:"payee"`
	Place       string    `json:"place"`
	IssueDate   string    `gorm:"not null" json:"issue_date"`
	FilePath    string    `json:"file_path"`
	Status      string    `gorm:"not null;index;default:issued" json:"status"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for ChequeRecord
func (ChequeRecord) TableName() string {
	return "cheque_records"
}

// Cheque register status constants
const (
	ChequeStatusIssued  = "issued"
	ChequeStatusPrinted = "printed"
	ChequeStatusVoided  = "voided"
)

// MayPrint reports whether the record can be sent to the printer.
func (c *ChequeRecord) MayPrint() bool {
	return c.Status == ChequeStatusIssued || c.Status == ChequeStatusPrinted
}

// MayVoid reports whether the record can still be voided.
func (c *ChequeRecord) MayVoid() bool {
	return c.Status != ChequeStatusVoided
}
