package requests

type CreateRequestInput struct {
	VictimID       int    `json:"victim_id"`
	CampID         int    `json:"camp_id"`
	ItemRequested  string `json:"item_requested"`
	QuantityNeeded int    `json:"quantity_needed"`
	Priority       string `json:"priority"`
	RequestDate    string `json:"request_date"`
}

type RequestFilter struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	CampID   int    `form:"camp_id"`
	VictimID int    `form:"victim_id"`
}
