package models

import (
	"time"
)

// Known document type tags. The vocabulary is not closed: any non-empty tag is
// accepted on upload, and every tag except CAR_PICTURE holds at most one current
// file per car. RWC_DOC and ROC_DOC are both in circulation for the roadworthy
// certificate slot; both stay valid.
const (
	DocExportCert       = "EXPORT_CERT"
	DocExpenseSheet     = "EXPENSE_SHEET"
	DocBL               = "BL_DOC"
	DocVIA              = "VIA_DOC"
	DocCompliance       = "COMPLIANCE_DOC"
	DocRWC              = "RWC_DOC"
	DocROC              = "ROC_DOC"
	DocInvoiceFromJapan = "INVOICE_FROM_JAPAN"
	DocPaymentProof     = "PAYMENT_PROOF"
	DocAuctionSheet     = "AUCTION_SHEET"
	DocCarPicture       = "CAR_PICTURE"
)

// CarDocument is one uploaded file attached to a car. FilePath is relative to
// the uploads root so the root can be relocated without invalidating rows.
type CarDocument struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CarID     uint      `gorm:"column:car_id;not null;index" json:"carId"`
	Type      string    `gorm:"column:type;type:varchar(50);not null" json:"type"`
	FilePath  string    `gorm:"column:file_path;not null;uniqueIndex" json:"filePath"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CarDocument) TableName() string {
	return "CarDocuments"
}
