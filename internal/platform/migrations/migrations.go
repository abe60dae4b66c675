package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID               int64            `gorm:"primaryKey;column:id"`
	BookISBN         string           `gorm:"column:book_isbn;type:varchar(32);index"`
	BookName         *string          `gorm:"column:book_name"`
	BookPrice        *decimal.Decimal `gorm:"column:book_price;type:numeric(12,2)"`
	Quantity         int              `gorm:"column:quantity"`
	Status           string           `gorm:"column:status;type:varchar(32);index"`
	CreatedDate      time.Time        `gorm:"column:created_date;index"`
	LastModifiedDate time.Time        `gorm:"column:last_modified_date"`
	CreatedBy        string           `gorm:"column:created_by;index"`
	LastModifiedBy   string           `gorm:"column:last_modified_by"`
	Version          int64            `gorm:"column:version"`
}

func (orderRecord) TableName() string { return "orders" }
