package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/sashbid/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs read-only aggregate queries. Queries are written with
// ? placeholders and rebound for the driver in use.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

var _ report.RepositoryAPI = (*ReportRepository)(nil)

func (r *ReportRepository) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return r.db.SelectContext(ctx, dest, r.db.Rebind(query), args...)
}

func (r *ReportRepository) Totals(ctx context.Context) (report.Totals, error) {
	const query = `
SELECT
	(SELECT COUNT(*) FROM bids) AS bids,
	(SELECT COUNT(*) FROM bids WHERE status = 'accepted') AS accepted_bids,
	(SELECT COUNT(*) FROM projects) AS projects,
	(SELECT COUNT(*) FROM projects WHERE status = 'completed') AS completed_projects,
	(SELECT COUNT(*) FROM clients) AS clients,
	(SELECT COALESCE(SUM(value), 0) FROM projects) AS revenue`

	var t report.Totals
	err := r.db.GetContext(ctx, &t, query)
	return t, err
}

func (r *ReportRepository) BidFacts(ctx context.Context, since time.Time) ([]report.BidFact, error) {
	facts := []report.BidFact{}
	err := r.selectAll(ctx, &facts,
		`SELECT status, total, created_at FROM bids WHERE created_at >= ? ORDER BY created_at`, since.UTC())
	return facts, err
}

func (r *ReportRepository) ProjectFacts(ctx context.Context, since time.Time) ([]report.ProjectFact, error) {
	facts := []report.ProjectFact{}
	err := r.selectAll(ctx, &facts,
		`SELECT status, created_at FROM projects WHERE created_at >= ? ORDER BY created_at`, since.UTC())
	return facts, err
}

func (r *ReportRepository) BidStatusCounts(ctx context.Context) ([]report.StatusCount, error) {
	counts := []report.StatusCount{}
	err := r.selectAll(ctx, &counts, `SELECT status, COUNT(*) AS count FROM bids GROUP BY status`)
	return counts, err
}

func (r *ReportRepository) ProjectStatusCounts(ctx context.Context) ([]report.StatusCount, error) {
	counts := []report.StatusCount{}
	err := r.selectAll(ctx, &counts, `SELECT status, COUNT(*) AS count FROM projects GROUP BY status`)
	return counts, err
}

func (r *ReportRepository) InventoryFacts(ctx context.Context) ([]report.InventoryFact, error) {
	facts := []report.InventoryFact{}
	err := r.selectAll(ctx, &facts, `SELECT type, price, quantity FROM inventory_items`)
	return facts, err
}

func (r *ReportRepository) ClientTotals(ctx context.Context) ([]report.ClientTotals, error) {
	const query = `
SELECT
	c.id,
	c.name,
	(SELECT COUNT(*) FROM projects p WHERE p.client_id = c.id) AS projects,
	(SELECT COUNT(*) FROM bids b WHERE b.client_id = c.id) AS bids,
	(SELECT COALESCE(SUM(p.value), 0) FROM projects p WHERE p.client_id = c.id) AS value
FROM clients c
ORDER BY c.id`

	totals := []report.ClientTotals{}
	err := r.selectAll(ctx, &totals, query)
	return totals, err
}

func (r *ReportRepository) BidRows(ctx context.Context) ([]report.BidRow, error) {
	const query = `
SELECT
	b.id, b.status, b.subtotal, b.tax, b.total, b.due_date, b.created_at,
	b.client_id, COALESCE(c.name, '') AS client_name,
	b.project_id, COALESCE(p.name, '') AS project_name
FROM bids b
LEFT JOIN clients c ON c.id = b.client_id
LEFT JOIN projects p ON p.id = b.project_id
ORDER BY b.created_at DESC, b.id`

	rows := []report.BidRow{}
	err := r.selectAll(ctx, &rows, query)
	return rows, err
}

func (r *ReportRepository) ProjectRows(ctx context.Context) ([]report.ProjectRow, error) {
	const query = `
SELECT
	p.id, p.name, p.status, p.value, p.start_date, p.end_date, p.created_at,
	p.client_id, COALESCE(c.name, '') AS client_name
FROM projects p
LEFT JOIN clients c ON c.id = p.client_id
ORDER BY p.created_at DESC, p.id`

	rows := []report.ProjectRow{}
	err := r.selectAll(ctx, &rows, query)
	return rows, err
}

func (r *ReportRepository) InventoryRows(ctx context.Context) ([]report.InventoryRow, error) {
	const query = `
SELECT
	id, name, type, sku,
	COALESCE(category, '') AS category,
	COALESCE(manufacturer, '') AS manufacturer,
	price, cost, quantity, min_quantity
FROM inventory_items
ORDER BY type, name, id`

	rows := []report.InventoryRow{}
	err := r.selectAll(ctx, &rows, query)
	return rows, err
}

func (r *ReportRepository) ClientRows(ctx context.Context) ([]report.ClientRow, error) {
	const query = `
SELECT id, name, email, phone, address_city AS city, address_state AS state
FROM clients
ORDER BY name, id`

	rows := []report.ClientRow{}
	err := r.selectAll(ctx, &rows, query)
	return rows, err
}
