package handler

import "time"

// --- Request types ---

// Lat and Lng are pointers so that 0 (a legal coordinate on both axes)
// survives the required check.
type createFountainRequest struct {
	Name    string   `json:"name"    validate:"required"`
	Address string   `json:"address" validate:"required"`
	Lat     *float64 `json:"lat"     validate:"required,gte=-90,lte=90"`
	Lng     *float64 `json:"lng"     validate:"required,gte=-180,lte=180"`
}

type addReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=red yellow green"`
	Text   string `json:"text"   validate:"required,min=1,max=140"`
}

// --- Response types ---

type reviewResponse struct {
	Status    string    `json:"status"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type fountainResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Address           string           `json:"address"`
	Lat               float64          `json:"lat"`
	Lng               float64          `json:"lng"`
	Reviews           []reviewResponse `json:"reviews"`
	CurrentStatus     string           `json:"currentStatus"`
	CreatedBy         string           `json:"createdBy"`
	CreatedByUsername string           `json:"createdByUsername"`
	CreatedAt         time.Time        `json:"createdAt"`
	ReportCount       int              `json:"reportCount"`
}

type fountainEnvelope struct {
	Success  bool             `json:"success"`
	Fountain fountainResponse `json:"fountain"`
}

type listFountainsResponse struct {
	Success   bool               `json:"success"`
	Count     int                `json:"count"`
	Fountains []fountainResponse `json:"fountains"`
}
