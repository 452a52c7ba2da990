package models

import "fmt"

// Статусы события: предстоящая гонка или уже прошедшая.
const (
	EventStatusPlanned = "planned"
	EventStatusPast    = "past"
)

// EventItem представляет событие календаря клуба (гонку, трофи-рейд, сбор).
type EventItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	Status      string `json:"status"`
}

func (e *EventItem) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Status != "" && e.Status != EventStatusPlanned && e.Status != EventStatusPast {
		return fmt.Errorf("event status must be %q or %q", EventStatusPlanned, EventStatusPast)
	}
	return nil
}
