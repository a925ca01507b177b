package inventory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/sashbid/internal"
	inventoryDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/inventory"
	"github.com/frahmantamala/sashbid/internal/core/events"
	coreuser "github.com/frahmantamala/sashbid/internal/core/user"
)

// RepositoryAPI returns (nil, nil) from lookups that find nothing.
type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*inventoryDatamodel.Item, error)
	ListLowStock(ctx context.Context) ([]*inventoryDatamodel.Item, error)
	GetByID(ctx context.Context, id string) (*inventoryDatamodel.Item, error)
	GetBySKU(ctx context.Context, sku string) (*inventoryDatamodel.Item, error)
	Create(ctx context.Context, item *inventoryDatamodel.Item) error
	Update(ctx context.Context, item *inventoryDatamodel.Item) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo      RepositoryAPI
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Item, error) {
	models, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.NewInternalError("failed to list inventory", err)
	}
	return fromDataModels(models), nil
}

// ListLowStock returns items at or below their reorder threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]*Item, error) {
	models, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, internal.NewInternalError("failed to list low stock items", err)
	}
	return fromDataModels(models), nil
}

func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) Create(ctx context.Context, actorID string, dto CreateItemDTO) (*Item, error) {
	dto.SKU = strings.TrimSpace(dto.SKU)
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(ctx, dto.SKU, ""); err != nil {
		return nil, err
	}

	m := &inventoryDatamodel.Item{
		Name:         strings.TrimSpace(dto.Name),
		Type:         dto.Type,
		Description:  strings.TrimSpace(dto.Description),
		SKU:          dto.SKU,
		Dimensions:   toDataDimensions(dto.Dimensions),
		Manufacturer: dto.Manufacturer,
		Price:        dto.Price,
		Cost:         dto.Cost,
		Quantity:     dto.Quantity,
		MinQuantity:  dto.MinQuantity,
		Location:     dto.Location,
		Category:     dto.Category,
		Tags:         nonNil(dto.Tags),
		Images:       nonNil(dto.Images),
		Notes:        dto.Notes,
		CreatedBy:    coreuser.Ref(actorID),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to create inventory item", err)
	}

	s.logger.Info("inventory item created", "item_id", m.ID, "sku", m.SKU)
	s.notifyLowStock(ctx, m)
	return s.Get(ctx, m.ID)
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateItemDTO) (*Item, error) {
	if dto.SKU != nil {
		sku := strings.TrimSpace(*dto.SKU)
		dto.SKU = &sku
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.SKU != nil && *dto.SKU != m.SKU {
		if err := s.ensureSKUFree(ctx, *dto.SKU, m.ID); err != nil {
			return nil, err
		}
		m.SKU = *dto.SKU
	}
	if dto.Name != nil {
		m.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Type != nil {
		m.Type = *dto.Type
	}
	if dto.Description != nil {
		m.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.Dimensions != nil {
		m.Dimensions = toDataDimensions(dto.Dimensions)
	}
	if dto.Manufacturer != nil {
		m.Manufacturer = *dto.Manufacturer
	}
	if dto.Price != nil {
		m.Price = *dto.Price
	}
	if dto.Cost != nil {
		m.Cost = *dto.Cost
	}
	if dto.Quantity != nil {
		m.Quantity = *dto.Quantity
	}
	if dto.MinQuantity != nil {
		m.MinQuantity = *dto.MinQuantity
	}
	if dto.Location != nil {
		m.Location = *dto.Location
	}
	if dto.Category != nil {
		m.Category = *dto.Category
	}
	if dto.Tags != nil {
		m.Tags = nonNil(*dto.Tags)
	}
	if dto.Images != nil {
		m.Images = nonNil(*dto.Images)
	}
	if dto.Notes != nil {
		m.Notes = *dto.Notes
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, internal.NewInternalError("failed to update inventory item", err)
	}
	s.notifyLowStock(ctx, m)
	return s.Get(ctx, m.ID)
}

// AdjustQuantity sets or shifts the stock level. A result below zero is
// rejected and the stored quantity is left untouched.
func (s *Service) AdjustQuantity(ctx context.Context, id string, dto QuantityDTO) (*Item, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next := m.Quantity
	if dto.Quantity != nil {
		next = *dto.Quantity
	} else {
		next += *dto.Adjustment
	}
	if next < 0 {
		return nil, internal.NewValidationFieldError("quantity", "Quantity cannot be negative", internal.ErrCodeNegativeQuantity)
	}

	if err := s.repo.UpdateQuantity(ctx, m.ID, next); err != nil {
		return nil, internal.NewInternalError("failed to update inventory quantity", err)
	}
	s.logger.Info("inventory quantity changed", "item_id", m.ID, "from", m.Quantity, "to", next)

	m.Quantity = next
	s.notifyLowStock(ctx, m)
	return s.Get(ctx, m.ID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.NewInternalError("failed to delete inventory item", err)
	}
	s.logger.Info("inventory item deleted", "item_id", id)
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*inventoryDatamodel.Item, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to get inventory item", err)
	}
	if m == nil {
		return nil, internal.ErrInventoryNotFound
	}
	return m, nil
}

func (s *Service) ensureSKUFree(ctx context.Context, sku, selfID string) error {
	existing, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return internal.NewInternalError("failed to check sku", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError("Item with this SKU already exists", internal.ErrCodeSKUTaken)
	}
	return nil
}

// notifyLowStock publishes after the write has succeeded; handler failures
// are logged and never fail the request.
func (s *Service) notifyLowStock(ctx context.Context, m *inventoryDatamodel.Item) {
	if s.publisher == nil || !m.IsLowStock() {
		return
	}
	event := events.NewLowStockEvent(m.ID, m.SKU, m.Name, m.Quantity, m.MinQuantity)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("low stock notification failed", "item_id", m.ID, "error", err)
	}
}

func fromDataModels(models []*inventoryDatamodel.Item) []*Item {
	items := make([]*Item, 0, len(models))
	for _, m := range models {
		items = append(items, FromDataModel(m))
	}
	return items
}
