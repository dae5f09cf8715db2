package core

// CategoryTotal is an absolute amount aggregated under one category label.
type CategoryTotal struct {
	Name  string `json:"category"`
	Total Cents  `json:"total"`
}
