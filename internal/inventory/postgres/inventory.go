package postgres

import (
	"context"
	"errors"
	"strings"

	inventoryDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/inventory"
	"github.com/frahmantamala/sashbid/internal/inventory"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ inventory.RepositoryAPI = (*InventoryRepository)(nil)

func (r *InventoryRepository) List(ctx context.Context, filter inventory.ListFilter) ([]*inventoryDatamodel.Item, error) {
	q := r.db.WithContext(ctx).Preload("Creator")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Manufacturer != "" {
		q = q.Where("manufacturer = ?", filter.Manufacturer)
	}
	if filter.MinQuantity != nil {
		q = q.Where("quantity >= ?", *filter.MinQuantity)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(manufacturer) LIKE ?",
			like, like, like, like)
	}

	var items []*inventoryDatamodel.Item
	err := q.Order("name ASC").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *InventoryRepository) ListLowStock(ctx context.Context) ([]*inventoryDatamodel.Item, error) {
	var items []*inventoryDatamodel.Item
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("quantity <= min_quantity").
		Order("name ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*inventoryDatamodel.Item, error) {
	return r.first(r.db.WithContext(ctx).Preload("Creator"), "id = ?", id)
}

func (r *InventoryRepository) GetBySKU(ctx context.Context, sku string) (*inventoryDatamodel.Item, error) {
	return r.first(r.db.WithContext(ctx), "sku = ?", sku)
}

func (r *InventoryRepository) first(q *gorm.DB, query string, args ...interface{}) (*inventoryDatamodel.Item, error) {
	var item inventoryDatamodel.Item
	err := q.Where(query, args...).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(ctx context.Context, item *inventoryDatamodel.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *InventoryRepository) Update(ctx context.Context, item *inventoryDatamodel.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

// UpdateQuantity touches only the quantity column.
func (r *InventoryRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&inventoryDatamodel.Item{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&inventoryDatamodel.Item{}, "id = ?", id).Error
}
