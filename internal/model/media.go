package model

import "time"

// Media maps to the media table: metadata for an uploaded file stored on disk.
type Media struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null"                     json:"name"`
	URL       string    `gorm:"type:text;not null"                             json:"url"`
	Type      string    `gorm:"type:varchar(20);not null"                      json:"type"` // image|video|audio|document
	MimeType  string    `gorm:"type:varchar(100);not null"                     json:"mime_type"`
	Size      int64     `gorm:"not null"                                       json:"size"`
	Alt       *string   `gorm:"type:varchar(255)"                              json:"alt,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (Media) TableName() string { return "media" }
