package camps

type CampInput struct {
	AreaID           int      `json:"area_id"`
	ManagerID        *int     `json:"manager_id"`
	Name             string   `json:"name"`
	Capacity         *int     `json:"capacity"`
	CurrentOccupancy int      `json:"current_occupancy"`
	Location         string   `json:"location"`
	DateEstablished  string   `json:"date_established"`
	Status           string   `json:"status"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

type CampFilter struct {
	AreaID    int    `form:"area_id"`
	ManagerID int    `form:"manager_id"`
	Status    string `form:"status"`
}
