package domain

// CartItem is one line in a session cart. Uniqueness key is the product ID;
// quantity is always >= 1, a line dropped to zero is removed instead.
type CartItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Quantity  int    `json:"quantity"`
}

// CartTotals is derived from the live item list, never stored.
type CartTotals struct {
	TotalItems int   `json:"totalItems"`
	TotalPrice int64 `json:"totalPrice"`
}
