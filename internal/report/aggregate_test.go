package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregate(t *testing.T) {
	mar9 := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	mar10 := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	products := []ProductSale{
		// ord-1: 2 burgers at 5.00 costing 3.00, 1 fries at 2.00 costing 0.50
		{OrderID: "o1", CreatedAt: mar10, Quantity: 2, Price: d("5"), Cost: d("3")},
		{OrderID: "o1", CreatedAt: mar10, Quantity: 1, Price: d("2"), Cost: d("0.5")},
		// ord-2 sells at a loss and is left out of the product part
		{OrderID: "o2", CreatedAt: mar10, Quantity: 1, Price: d("1"), Cost: d("4")},
		{OrderID: "o3", CreatedAt: mar9, Quantity: 3, Price: d("4"), Cost: d("1")},
	}
	deals := []DealSale{
		// 2 family bundles at 20.00 whose products cost 12.00 per bundle
		{OrderID: "o2", DealID: "family", CreatedAt: mar10, Quantity: 2, Price: d("20"), BundleCost: d("12")},
	}

	days := Aggregate(products, deals)
	if len(days) != 2 {
		t.Fatalf("days = %+v", days)
	}

	want := []Day{
		{Date: "2024-03-09", Sales: d("12"), Profit: d("9")},
		{Date: "2024-03-10", Sales: d("52"), Profit: d("21.5")},
	}
	for i, w := range want {
		got := days[i]
		if got.Date != w.Date || !got.Sales.Equal(w.Sales) || !got.Profit.Equal(w.Profit) {
			t.Errorf("day %d = %s %s/%s, want %s %s/%s", i, got.Date, got.Sales, got.Profit, w.Date, w.Sales, w.Profit)
		}
	}

	s := Summarize(days, 3)
	if !s.TotalSales.Equal(d("64")) || !s.TotalProfit.Equal(d("30.5")) || s.TotalOrders != 3 {
		t.Errorf("summary = %s/%s/%d", s.TotalSales, s.TotalProfit, s.TotalOrders)
	}
}

func TestAggregateGroupsByUTCDate(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	// 01:00 local on the 11th is still the 10th in UTC
	at := time.Date(2024, 3, 11, 1, 0, 0, 0, wib)

	days := Aggregate([]ProductSale{{OrderID: "o1", CreatedAt: at, Quantity: 1, Price: d("3"), Cost: d("1")}}, nil)
	if len(days) != 1 || days[0].Date != "2024-03-10" {
		t.Errorf("days = %+v", days)
	}
}

func TestAggregateEmpty(t *testing.T) {
	s := Summarize(Aggregate(nil, nil), 0)
	if len(s.Days) != 0 || !s.TotalSales.IsZero() || !s.TotalProfit.IsZero() {
		t.Errorf("summary = %+v", s)
	}
}
