package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/sashbid/internal/bid"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

var _ bid.RepositoryAPI = (*BidRepository)(nil)

func (r *BidRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Project").
		Preload("Client").
		Preload("Creator")
}

func (r *BidRepository) List(ctx context.Context, filter bid.ListFilter) ([]*bidDatamodel.Bid, error) {
	q := r.withRefs(ctx)

	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MinTotal != nil {
		q = q.Where("total >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		q = q.Where("total <= ?", *filter.MaxTotal)
	}

	var bids []*bidDatamodel.Bid
	err := q.Order("created_at DESC").Order("id ASC").Find(&bids).Error
	return bids, err
}

func (r *BidRepository) GetByID(ctx context.Context, id string) (*bidDatamodel.Bid, error) {
	var b bidDatamodel.Bid
	err := r.withRefs(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BidRepository) Create(ctx context.Context, b *bidDatamodel.Bid) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BidRepository) Update(ctx context.Context, b *bidDatamodel.Bid) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *BidRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&bidDatamodel.Bid{}, "id = ?", id).Error
}
