package model

// Symbol identifies one listed security in the scan universe.
type Symbol struct {
	ID       string `json:"symbol"`
	Category string `json:"category,omitempty"`
}
