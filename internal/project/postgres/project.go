package postgres

import (
	"context"
	"errors"
	"strings"

	bidDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/bid"
	projectDatamodel "github.com/frahmantamala/sashbid/internal/core/datamodel/project"
	"github.com/frahmantamala/sashbid/internal/project"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ project.RepositoryAPI = (*ProjectRepository)(nil)

func (r *ProjectRepository) List(ctx context.Context, filter project.ListFilter) ([]*projectDatamodel.Project, error) {
	q := r.db.WithContext(ctx).Preload("Client").Preload("Creator")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.StartDateFrom != nil {
		q = q.Where("start_date >= ?", *filter.StartDateFrom)
	}
	if filter.StartDateTo != nil {
		q = q.Where("start_date <= ?", *filter.StartDateTo)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var projects []*projectDatamodel.Project
	err := q.Order("created_at DESC").Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Creator").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *ProjectRepository) Update(ctx context.Context, p *projectDatamodel.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&projectDatamodel.Project{}, "id = ?", id).Error
}

func (r *ProjectRepository) CountBids(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bidDatamodel.Bid{}).Where("project_id = ?", id).Count(&n).Error
	return n, err
}
