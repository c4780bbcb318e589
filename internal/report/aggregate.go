package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type orderTotals struct {
	date   string
	sales  decimal.Decimal
	profit decimal.Decimal
}

// Aggregate folds order lines into per-day sales and profit, oldest day first.
//
// Direct products count per order, and only when both the order's product sales and
// product profit are positive. Every deal line counts as price*qty minus bundle cost*qty.
func Aggregate(products []ProductSale, deals []DealSale) []Day {
	byDay := map[string]*Day{}
	add := func(date string, sales, profit decimal.Decimal) {
		d, ok := byDay[date]
		if !ok {
			d = &Day{Date: date, Sales: decimal.Zero, Profit: decimal.Zero}
			byDay[date] = d
		}
		d.Sales = d.Sales.Add(sales)
		d.Profit = d.Profit.Add(profit)
	}

	perOrder := map[string]*orderTotals{}
	var orderIDs []string
	for _, p := range products {
		t, ok := perOrder[p.OrderID]
		if !ok {
			t = &orderTotals{date: p.CreatedAt.UTC().Format(dateLayout)}
			perOrder[p.OrderID] = t
			orderIDs = append(orderIDs, p.OrderID)
		}
		qty := decimal.NewFromInt(int64(p.Quantity))
		t.sales = t.sales.Add(p.Price.Mul(qty))
		t.profit = t.profit.Add(p.Price.Sub(p.Cost).Mul(qty))
	}
	for _, id := range orderIDs {
		t := perOrder[id]
		if t.sales.IsPositive() && t.profit.IsPositive() {
			add(t.date, t.sales, t.profit)
		}
	}

	for _, d := range deals {
		qty := decimal.NewFromInt(int64(d.Quantity))
		sales := d.Price.Mul(qty)
		add(d.CreatedAt.UTC().Format(dateLayout), sales, sales.Sub(d.BundleCost.Mul(qty)))
	}

	out := make([]Day, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Summarize totals the days.
func Summarize(days []Day, totalOrders int) *Summary {
	s := &Summary{TotalSales: decimal.Zero, TotalProfit: decimal.Zero, TotalOrders: totalOrders, Days: days}
	for _, d := range days {
		s.TotalSales = s.TotalSales.Add(d.Sales)
		s.TotalProfit = s.TotalProfit.Add(d.Profit)
	}
	return s
}
