package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/frahmantamala/sashbid/internal/bid"
	"github.com/frahmantamala/sashbid/internal/inventory"
	"github.com/frahmantamala/sashbid/internal/project"
)

type monthKey struct {
	year  int
	month time.Month
}

func (k monthKey) before(o monthKey) bool {
	if k.year != o.year {
		return k.year < o.year
	}
	return k.month < o.month
}

func keyOf(t time.Time) monthKey {
	t = t.UTC()
	return monthKey{year: t.Year(), month: t.Month()}
}

func sortedKeys[V any](m map[monthKey]V) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].before(keys[j]) })
	return keys
}

// WindowStart is the earliest createdAt included in an n-month series.
func WindowStart(now time.Time, months int) time.Time {
	return now.UTC().AddDate(0, -months, 0)
}

// MonthlyBidSeries buckets bid totals by calendar month of creation. Only
// months holding at least one bid appear. Pending covers bids still awaiting
// a decision.
func MonthlyBidSeries(facts []BidFact) []MonthlyBids {
	type sums struct{ total, accepted, rejected, pending decimal.Decimal }
	buckets := make(map[monthKey]*sums)

	for _, f := range facts {
		k := keyOf(f.CreatedAt)
		b, ok := buckets[k]
		if !ok {
			b = &sums{}
			buckets[k] = b
		}
		v := decimal.NewFromFloat(f.Total)
		b.total = b.total.Add(v)
		switch f.Status {
		case bid.StatusAccepted:
			b.accepted = b.accepted.Add(v)
		case bid.StatusRejected:
			b.rejected = b.rejected.Add(v)
		case bid.StatusDraft, bid.StatusSent:
			b.pending = b.pending.Add(v)
		}
	}

	series := make([]MonthlyBids, 0, len(buckets))
	for _, k := range sortedKeys(buckets) {
		b := buckets[k]
		series = append(series, MonthlyBids{
			Month:    k.month.String()[:3],
			Year:     k.year,
			Total:    b.total.InexactFloat64(),
			Accepted: b.accepted.InexactFloat64(),
			Rejected: b.rejected.InexactFloat64(),
			Pending:  b.pending.InexactFloat64(),
		})
	}
	return series
}

// ProjectTimeline counts completed and in-progress projects per creation month.
func ProjectTimeline(facts []ProjectFact) []TimelinePoint {
	buckets := make(map[monthKey]*TimelinePoint)
	for _, f := range facts {
		k := keyOf(f.CreatedAt)
		p, ok := buckets[k]
		if !ok {
			p = &TimelinePoint{Month: k.month.String()[:3], Year: k.year}
			buckets[k] = p
		}
		switch f.Status {
		case project.StatusCompleted:
			p.Completed++
		case project.StatusInProgress:
			p.InProgress++
		}
	}

	timeline := make([]TimelinePoint, 0, len(buckets))
	for _, k := range sortedKeys(buckets) {
		timeline = append(timeline, *buckets[k])
	}
	return timeline
}

// Distribution converts status counts into whole-number percentages. Each
// bucket is rounded on its own, so the sum may drift from 100 by rounding.
// Statuses follow the given taxonomy; unknown statuses come last by name.
func Distribution(counts []StatusCount, taxonomy []string) []Slice {
	byStatus := make(map[string]int, len(counts))
	population := 0
	for _, c := range counts {
		if c.Count <= 0 {
			continue
		}
		byStatus[c.Status] += c.Count
		population += c.Count
	}
	if population == 0 {
		return []Slice{}
	}

	order := make([]string, 0, len(byStatus))
	known := make(map[string]bool, len(taxonomy))
	for _, s := range taxonomy {
		known[s] = true
		if byStatus[s] > 0 {
			order = append(order, s)
		}
	}
	var extra []string
	for s := range byStatus {
		if !known[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	slices := make([]Slice, 0, len(order))
	for _, s := range order {
		slices = append(slices, Slice{
			Name:  Label(s),
			Value: Percent(byStatus[s], population),
		})
	}
	return slices
}

// InventoryByCategory groups stock value (price × quantity) by item type.
func InventoryByCategory(facts []InventoryFact) []CategoryValue {
	type agg struct {
		count int
		value decimal.Decimal
	}
	byType := make(map[string]*agg)
	for _, f := range facts {
		a, ok := byType[f.Type]
		if !ok {
			a = &agg{}
			byType[f.Type] = a
		}
		a.count++
		a.value = a.value.Add(decimal.NewFromFloat(f.Price).Mul(decimal.NewFromInt(int64(f.Quantity))))
	}

	order := make([]string, 0, len(byType))
	seen := make(map[string]bool)
	for _, t := range inventory.Types {
		if _, ok := byType[t]; ok {
			order = append(order, t)
			seen[t] = true
		}
	}
	var extra []string
	for t := range byType {
		if !seen[t] {
			extra = append(extra, t)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	out := make([]CategoryValue, 0, len(order))
	for _, t := range order {
		out = append(out, CategoryValue{
			Category: Label(t),
			Count:    byType[t].count,
			Value:    byType[t].value.InexactFloat64(),
		})
	}
	return out
}

// TopClients ranks clients by linked project value, highest first, ties by id.
func TopClients(totals []ClientTotals, limit int) []TopClient {
	ranked := rank(totals, func(a, b ClientTotals) bool {
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.ID < b.ID
	}, limit)

	out := make([]TopClient, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, TopClient{ID: c.ID, Name: c.Name, ProjectCount: c.Projects, Value: c.Value})
	}
	return out
}

// ClientActivityByBids ranks clients by bid count, highest first, ties by id.
func ClientActivityByBids(totals []ClientTotals, limit int) []ClientActivity {
	return toActivity(rank(totals, func(a, b ClientTotals) bool {
		if a.Bids != b.Bids {
			return a.Bids > b.Bids
		}
		return a.ID < b.ID
	}, limit))
}

// ClientActivityByValue ranks clients like TopClients but keeps bid counts.
func ClientActivityByValue(totals []ClientTotals, limit int) []ClientActivity {
	return toActivity(rank(totals, func(a, b ClientTotals) bool {
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.ID < b.ID
	}, limit))
}

func rank(totals []ClientTotals, less func(a, b ClientTotals) bool, limit int) []ClientTotals {
	ranked := append([]ClientTotals(nil), totals...)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func toActivity(totals []ClientTotals) []ClientActivity {
	out := make([]ClientActivity, 0, len(totals))
	for _, c := range totals {
		out = append(out, ClientActivity(c))
	}
	return out
}

// Percent is round(part / whole × 100), 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// Label renders a status or type as a human label: "in_progress" becomes
// "In Progress". Casers carry state, so each call builds its own.
func Label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
