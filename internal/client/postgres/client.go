package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/frahmantamala/sashbid/internal/client"
	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	clientDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/client"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

var _ client.RepositoryAPI = (*ClientRepository)(nil)

func (r *ClientRepository) List(ctx context.Context, filter client.ListFilter) ([]*clientDatamodel.Client, error) {
	q := r.db.WithContext(ctx).Preload("Creator")
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(address_city) LIKE ? OR LOWER(address_state) LIKE ?",
			like, like, like, like, like)
	}

	var clients []*clientDatamodel.Client
	err := q.Order("name ASC").Order("id ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) GetByID(ctx context.Context, id string) (*clientDatamodel.Client, error) {
	return r.first(r.db.WithContext(ctx).Preload("Creator"), "id = ?", id)
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*clientDatamodel.Client, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", email)
}

func (r *ClientRepository) first(q *gorm.DB, query string, args ...interface{}) (*clientDatamodel.Client, error) {
	var c clientDatamodel.Client
	err := q.Where(query, args...).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *ClientRepository) Update(ctx context.Context, c *clientDatamodel.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&clientDatamodel.Client{}, "id = ?", id).Error
}

func (r *ClientRepository) CountDependents(ctx context.Context, id string) (int64, int64, error) {
	var projects, bids int64
	if err := r.db.WithContext(ctx).Model(&projectDatamodel.Project{}).Where("client_id = ?", id).Count(&projects).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&bidDatamodel.Bid{}).Where("client_id = ?", id).Count(&bids).Error; err != nil {
		return 0, 0, err
	}
	return projects, bids, nil
}
