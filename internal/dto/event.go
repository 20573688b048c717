package dto

import "time"

// ── Event DTOs ──

// CreateEventRequest creates or fully updates an event.
type CreateEventRequest struct {
	Title       string    `json:"title"        binding:"required,min=1,max=200"`
	Description string    `json:"description"  binding:"required"`
	Date        time.Time `json:"date"         binding:"required"`
	Location    string    `json:"location"     binding:"required,min=1,max=200"`
	Image       *string   `json:"image"        binding:"omitempty,url"`
	PaymentLink *string   `json:"payment_link" binding:"omitempty,url"`
	IsPublished bool      `json:"is_published"`
}

// SetPublishedRequest toggles the publish flag.
type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// AddPhotoRequest attaches a photo to an event.
type AddPhotoRequest struct {
	URL     string  `json:"url"     binding:"required,url"`
	Caption *string `json:"caption" binding:"omitempty,max=255"`
}

// EventResponse is an event with its registration count.
type EventResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Date              time.Time       `json:"date"`
	Location          string          `json:"location"`
	Image             *string         `json:"image,omitempty"`
	PaymentLink       *string         `json:"payment_link,omitempty"`
	IsPublished       bool            `json:"is_published"`
	RegistrationCount int64           `json:"registration_count"`
	Photos            []PhotoResponse `json:"photos,omitempty"`
	CreatedAt         string          `json:"created_at"`
}

// PhotoResponse is an event photo.
type PhotoResponse struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	Caption *string `json:"caption,omitempty"`
}

// RegistrationResponse is one event registration.
type RegistrationResponse struct {
	ID           string         `json:"id"`
	EventID      string         `json:"event_id"`
	User         *UserResponse  `json:"user,omitempty"`
	Event        *EventResponse `json:"event,omitempty"`
	RegisteredAt string         `json:"registered_at"`
}

// RegistrationStatusResponse reports whether the caller is registered.
type RegistrationStatusResponse struct {
	IsRegistered bool `json:"is_registered"`
}
