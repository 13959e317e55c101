package models

// Requests for the signal HTTP endpoints. Defined in domain for consistency and reuse.

type MarketsRequest struct {
	Limit int `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=500"`
}

type SignalsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=100"`
}

type HistoryRequest struct {
	ID   string `param:"id" json:"id" validate:"required,max=100,coinid"`
	Days int    `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}

type ChartRequest struct {
	ID     string `param:"id" json:"id" validate:"required,max=100,coinid"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=365"`
	Kind   string `query:"kind" json:"kind" default:"price" validate:"oneof=price indicators"`
	Handle string `query:"handle" json:"handle" validate:"omitempty,uuid"`
}

type DashboardRequest struct {
	Days int `query:"days" json:"days" default:"90" validate:"gte=1,lte=365"`
}
