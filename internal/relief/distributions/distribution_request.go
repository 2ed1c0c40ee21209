package distributions

type FulfillRequestPayload struct {
	SupplyID            int `json:"supply_id"`
	QuantityDistributed int `json:"quantity_distributed"`
}

type FulfillInput struct {
	RequestID           int
	SupplyID            int
	QuantityDistributed int
}

type DistributionFilter struct {
	VictimID  int `form:"victim_id"`
	SupplyID  int `form:"supply_id"`
	RequestID int `form:"request_id"`
}
