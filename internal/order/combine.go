package order

import (
	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/model"
)

// CombineProducts merges directly ordered products with the products implied by ordered deals.
// Each deal line contributes dealProduct.Quantity * dealLine.Quantity of every product it bundles.
// The result keeps first-seen order. Deduction, restoration and reporting all expand through here,
// so restoring an order is the exact inverse of deducting it.
func CombineProducts(products []model.OrderProduct, deals []model.OrderDeal, catalog map[string]*model.Deal) ([]model.OrderProduct, error) {
	combined := make([]model.OrderProduct, 0, len(products))
	index := make(map[string]int, len(products))

	add := func(productID string, quantity int) {
		if i, ok := index[productID]; ok {
			combined[i].Quantity += quantity
			return
		}
		index[productID] = len(combined)
		combined = append(combined, model.OrderProduct{ProductID: productID, Quantity: quantity})
	}

	for _, p := range products {
		add(p.ProductID, p.Quantity)
	}

	for _, d := range deals {
		deal, ok := catalog[d.DealID]
		if !ok || deal == nil {
			return nil, apperror.NotFound("one of the deals was not found: %s", d.DealID)
		}
		for _, dp := range deal.Products {
			add(dp.ProductID, dp.Quantity*d.Quantity)
		}
	}

	return combined, nil
}
