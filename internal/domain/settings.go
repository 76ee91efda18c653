package domain

import "time"

// StoreSettings is the single-row store profile edited from the back office.
type StoreSettings struct {
	StoreName    string    `json:"storeName"`
	StoreEmail   string    `json:"storeEmail"`
	StorePhone   string    `json:"storePhone"`
	StoreAddress string    `json:"storeAddress"`
	DeliveryFee  int64     `json:"deliveryFee"`
	MinimumOrder int64     `json:"minimumOrder"`
	TaxRatePct   float64   `json:"taxRatePct"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
