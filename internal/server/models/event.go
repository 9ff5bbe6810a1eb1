package models

// Event is a static fixture shown on the events page. Events are not persisted.
type Event struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
}
