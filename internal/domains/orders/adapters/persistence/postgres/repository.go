package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
	"github.com/smartinix/order-service/internal/platform/auth"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM. Updates are guarded
// by the version column: a write whose version no longer matches the stored
// row fails with ports.ErrVersionConflict.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order entity to a relational table.
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

// Save inserts a new order or updates an existing one with a version check.
func (r *Repository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Order{}, err
	}
	if order.ID == 0 {
		return r.insert(ctx, order)
	}
	return r.update(ctx, order)
}

func (r *Repository) insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	subject := auth.SubjectFromContext(ctx)
	now := time.Now().UTC()
	record := toRecord(order)
	record.Version = 0
	record.CreatedDate = now
	record.LastModifiedDate = now
	record.CreatedBy = subject
	record.LastModifiedBy = subject
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Order{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) update(ctx context.Context, order domain.Order) (domain.Order, error) {
	subject := auth.SubjectFromContext(ctx)
	assignments := map[string]any{
		"book_isbn":          order.BookISBN,
		"book_name":          order.BookName,
		"book_price":         order.BookPrice,
		"quantity":           order.Quantity,
		"status":             string(order.Status),
		"last_modified_date": time.Now().UTC(),
		"version":            order.Version + 1,
	}
	if subject != "" {
		assignments["last_modified_by"] = subject
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(assignments)
	if result.Error != nil {
		return domain.Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row is gone or another writer bumped the version first.
		if _, err := r.FindByID(ctx, order.ID); errors.Is(err, ports.ErrNotFound) {
			return domain.Order{}, ports.ErrNotFound
		}
		return domain.Order{}, ports.ErrVersionConflict
	}
	return r.FindByID(ctx, order.ID)
}

// FindByID fetches an order by identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Order{}, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, ports.ErrNotFound
		}
		return domain.Order{}, err
	}
	return record.toDomain(), nil
}

// FindAllByCreatedBy returns the orders created by the given user in
// insertion order.
func (r *Repository) FindAllByCreatedBy(ctx context.Context, userID string) ([]domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order domain.Order) orderRecord {
	return orderRecord{
		ID:               order.ID,
		BookISBN:         order.BookISBN,
		BookName:         order.BookName,
		BookPrice:        order.BookPrice,
		Quantity:         order.Quantity,
		Status:           string(order.Status),
		CreatedDate:      order.CreatedDate,
		LastModifiedDate: order.LastModifiedDate,
		CreatedBy:        order.CreatedBy,
		LastModifiedBy:   order.LastModifiedBy,
		Version:          order.Version,
	}
}

func (r orderRecord) toDomain() domain.Order {
	return domain.Order{
		ID:               r.ID,
		BookISBN:         r.BookISBN,
		BookName:         r.BookName,
		BookPrice:        r.BookPrice,
		Quantity:         r.Quantity,
		Status:           domain.Status(r.Status),
		CreatedDate:      r.CreatedDate,
		LastModifiedDate: r.LastModifiedDate,
		CreatedBy:        r.CreatedBy,
		LastModifiedBy:   r.LastModifiedBy,
		Version:          r.Version,
	}
}
