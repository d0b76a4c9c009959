package catalog

type CourtListResponse struct {
	Courts []Court `json:"courts"`
	Total  int     `json:"total"`
}

type CoachListResponse struct {
	Coaches []Coach `json:"coaches"`
	Total   int     `json:"total"`
}

type EquipmentListResponse struct {
	Equipment []Equipment `json:"equipment"`
	Total     int         `json:"total"`
}

type PricingRuleListResponse struct {
	Rules []PricingRule `json:"rules"`
	Total int           `json:"total"`
}
