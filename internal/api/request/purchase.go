package request

// CreatePurchaseRequest represents the request body for selling a catalog
// product to a customer under one of its pricing plans.
type CreatePurchaseRequest struct {
	CustomerID       string `json:"customerId"`
	CatalogProductID string `json:"catalogProductId"`
	PlanID           string `json:"planId"`
	// Name optionally overrides the catalog product name on the sold product.
	Name string `json:"name,omitempty"`
}
