package model

import "time"

// Event maps to the events table.
type Event struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null"                             json:"description"`
	Date        time.Time `gorm:"not null"                                       json:"date"`
	Location    string    `gorm:"type:varchar(200);not null"                     json:"location"`
	Image       *string   `gorm:"type:text"                                      json:"image,omitempty"`
	PaymentLink *string   `gorm:"type:text"                                      json:"payment_link,omitempty"`
	IsPublished bool      `gorm:"not null;default:false"                         json:"is_published"`
	BaseModel

	Photos        []EventPhoto        `gorm:"foreignKey:EventID" json:"photos,omitempty"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"-"`
}

// TableName sets the table name.
func (Event) TableName() string { return "events" }

// EventPhoto maps to the event_photos table.
type EventPhoto struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventID   string    `gorm:"type:uuid;not null"                             json:"event_id"`
	URL       string    `gorm:"type:text;not null"                             json:"url"`
	Caption   *string   `gorm:"type:varchar(255)"                              json:"caption,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (EventPhoto) TableName() string { return "event_photos" }

// EventRegistration maps to the event_registrations table.
// The (user_id, event_id) pair is unique: one registration per member per event.
type EventRegistration struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_registration_pair"   json:"user_id"`
	EventID   string    `gorm:"type:uuid;not null;uniqueIndex:uq_registration_pair"   json:"event_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                    json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID"  json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// TableName sets the table name.
func (EventRegistration) TableName() string { return "event_registrations" }
