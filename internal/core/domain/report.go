package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UncategorizedLabel groups revenue of order lines whose menu item no longer exists.
const UncategorizedLabel = "Uncategorized"

const reportDays = 7

// DailyRevenue is the revenue booked on one local calendar day.
type DailyRevenue struct {
	Day     string  `json:"day"`
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// CategoryRevenue is the revenue attributed to one menu category.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// FinancialReport summarises revenue for the admin financial page.
type FinancialReport struct {
	TotalRevenue      float64           `json:"totalRevenue"`
	TotalOrders       int               `json:"totalOrders"`
	AverageOrderValue float64           `json:"averageOrderValue"`
	DailyRevenue      []DailyRevenue    `json:"dailyRevenue"`
	CategoryRevenue   []CategoryRevenue `json:"categoryRevenue"`
}

// ComputeFinancialReport derives revenue figures from orders. Cancelled orders
// are excluded. Daily buckets cover the seven local days ending on now's day,
// oldest first; category revenue is resolved through menu by menu item id.
func ComputeFinancialReport(orders []Order, menu []MenuItem, now time.Time) FinancialReport {
	categoryOf := make(map[string]string, len(menu))
	for _, m := range menu {
		categoryOf[m.ID] = m.Category
	}

	today := StartOfDay(now)
	first := today.AddDate(0, 0, -(reportDays - 1))
	daily := make([]decimal.Decimal, reportDays)
	byCategory := make(map[string]decimal.Decimal)

	total := decimal.Zero
	count := 0
	for _, o := range orders {
		if o.Status == StatusCancelled {
			continue
		}
		count++
		amount := decimal.NewFromFloat(o.TotalAmount)
		total = total.Add(amount)

		created := o.CreatedAt.In(now.Location())
		if idx := dayIndex(first, StartOfDay(created)); idx >= 0 {
			daily[idx] = daily[idx].Add(amount)
		}

		for _, it := range o.Items {
			cat, ok := categoryOf[it.MenuItemID]
			if !ok {
				cat = UncategorizedLabel
			}
			byCategory[cat] = byCategory[cat].Add(it.Subtotal())
		}
	}

	report := FinancialReport{
		TotalRevenue:    total.InexactFloat64(),
		TotalOrders:     count,
		DailyRevenue:    make([]DailyRevenue, 0, reportDays),
		CategoryRevenue: make([]CategoryRevenue, 0, len(byCategory)),
	}
	if count > 0 {
		report.AverageOrderValue = total.DivRound(decimal.NewFromInt(int64(count)), 2).InexactFloat64()
	}
	for i := 0; i < reportDays; i++ {
		day := first.AddDate(0, 0, i)
		report.DailyRevenue = append(report.DailyRevenue, DailyRevenue{
			Day:     day.Weekday().String()[:3],
			Date:    day.Format("2006-01-02"),
			Revenue: daily[i].InexactFloat64(),
		})
	}
	for cat, rev := range byCategory {
		report.CategoryRevenue = append(report.CategoryRevenue, CategoryRevenue{Category: cat, Revenue: rev.InexactFloat64()})
	}
	sort.Slice(report.CategoryRevenue, func(i, j int) bool {
		a, b := report.CategoryRevenue[i], report.CategoryRevenue[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Category < b.Category
	})
	return report
}

// dayIndex returns the offset in calendar days of day from first, or -1.
func dayIndex(first, day time.Time) int {
	for i := 0; i < reportDays; i++ {
		if first.AddDate(0, 0, i).Equal(day) {
			return i
		}
	}
	return -1
}
