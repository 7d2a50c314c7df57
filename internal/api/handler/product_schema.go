package handler

// ── Requests ──────────────────────────────────────────────────────────────────

// productRequest serves both create and partial update. There is no seller
// field: the owner is always the authenticated caller.
type productRequest struct {
	Description *string  `json:"description" example:"Handmade ceramic mug"`
	Price       *float64 `json:"price"       example:"12.5"`
	Quantity    *int     `json:"quantity"    example:"3"`
}

type listProductsQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

type productResponse struct {
	ID          string           `json:"id,omitempty"`
	SellerID    string           `json:"seller_id,omitempty"`
	Seller      *accountResponse `json:"seller,omitempty"`
	Description string           `json:"description"`
	Price       *float64         `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type productPageResponse struct {
	Count   int64             `json:"count"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Results []productResponse `json:"results"`
}
