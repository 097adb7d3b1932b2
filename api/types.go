package api

import "time"

type MenuItem struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// Categories is the body returned by GET /categories.
type Categories struct {
	Categories []string `json:"categories"`
}

// PreparationTime is the body returned by POST /order.
type PreparationTime struct {
	Minutes int `json:"preparation_time"`
}

func (p PreparationTime) Duration() time.Duration {
	return time.Duration(p.Minutes) * time.Minute
}
