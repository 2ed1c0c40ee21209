package supplies

type CreateSupplyInput struct {
	CampID     int    `json:"camp_id"`
	DonationID *int   `json:"donation_id"`
	Category   string `json:"category"`
	Type       string `json:"type"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
}

type SupplyFilter struct {
	CampID   int    `form:"camp_id"`
	Category string `form:"category"`
}
