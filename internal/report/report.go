// Package report builds read-only dashboard aggregates over bids, projects,
// clients and inventory.
package report

import "time"

// Facts are the raw rows the repository hands to the reducers.

type BidFact struct {
	Status    string    `db:"status"`
	Total     float64   `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

type ProjectFact struct {
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type InventoryFact struct {
	Type     string  `db:"type"`
	Price    float64 `db:"price"`
	Quantity int     `db:"quantity"`
}

type ClientTotals struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Projects int     `db:"projects"`
	Bids     int     `db:"bids"`
	Value    float64 `db:"value"`
}

type Totals struct {
	Bids              int     `db:"bids"`
	AcceptedBids      int     `db:"accepted_bids"`
	Projects          int     `db:"projects"`
	CompletedProjects int     `db:"completed_projects"`
	Clients           int     `db:"clients"`
	Revenue           float64 `db:"revenue"`
}

// Report shapes.

type MonthlyBids struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Total    float64 `json:"total"`
	Accepted float64 `json:"accepted"`
	Rejected float64 `json:"rejected"`
	Pending  float64 `json:"pending"`
}

type TimelinePoint struct {
	Month      string `json:"month"`
	Year       int    `json:"year"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"inProgress"`
}

type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Value    float64 `json:"value"`
}

type TopClient struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ProjectCount int     `json:"projectCount"`
	Value        float64 `json:"value"`
}

type ClientActivity struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Projects int     `json:"projects"`
	Bids     int     `json:"bids"`
	Value    float64 `json:"value"`
}

type Dashboard struct {
	TotalBids         int              `json:"totalBids"`
	TotalProjects     int              `json:"totalProjects"`
	TotalClients      int              `json:"totalClients"`
	TotalRevenue      float64          `json:"totalRevenue"`
	AcceptanceRate    int              `json:"acceptanceRate"`
	CompletionRate    int              `json:"completionRate"`
	BidData           []MonthlyBids    `json:"bidData"`
	ProjectStatusData []Slice          `json:"projectStatusData"`
	InventoryData     []CategoryValue  `json:"inventoryData"`
	ClientData        []ClientActivity `json:"clientData"`
}

// List report rows.

type BidRow struct {
	ID          string    `db:"id" json:"id"`
	Status      string    `db:"status" json:"status"`
	Subtotal    float64   `db:"subtotal" json:"subtotal"`
	Tax         float64   `db:"tax" json:"tax"`
	Total       float64   `db:"total" json:"total"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	ClientID    string    `db:"client_id" json:"clientId"`
	ClientName  string    `db:"client_name" json:"clientName"`
	ProjectID   string    `db:"project_id" json:"projectId"`
	ProjectName string    `db:"project_name" json:"projectName"`
}

type ProjectRow struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Status     string     `db:"status" json:"status"`
	Value      float64    `db:"value" json:"value"`
	StartDate  *time.Time `db:"start_date" json:"startDate,omitempty"`
	EndDate    *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	ClientID   string     `db:"client_id" json:"clientId"`
	ClientName string     `db:"client_name" json:"clientName"`
}

type InventoryRow struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Type         string  `db:"type" json:"type"`
	SKU          string  `db:"sku" json:"sku"`
	Category     string  `db:"category" json:"category"`
	Manufacturer string  `db:"manufacturer" json:"manufacturer"`
	Price        float64 `db:"price" json:"price"`
	Cost         float64 `db:"cost" json:"cost"`
	Quantity     int     `db:"quantity" json:"quantity"`
	MinQuantity  int     `db:"min_quantity" json:"minQuantity"`
}

type ClientRow struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
	City  string `db:"city" json:"city"`
	State string `db:"state" json:"state"`
}
