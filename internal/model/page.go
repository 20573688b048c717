package model

// SystemPageSlugs lists the content pages that ship with the site and can
// never be deleted from the back office.
var SystemPageSlugs = map[string]bool{
	"home":         true,
	"presentation": true,
	"team":         true,
	"legal":        true,
	"privacy":      true,
}

// Page maps to the pages table.
type Page struct {
	ID              string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug            string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"slug"`
	Title           string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Content         string  `gorm:"type:text;not null"                             json:"content"`
	MetaTitle       *string `gorm:"type:varchar(200)"                              json:"meta_title,omitempty"`
	MetaDescription *string `gorm:"type:varchar(500)"                              json:"meta_description,omitempty"`
	IsPublished     bool    `gorm:"not null;default:false"                         json:"is_published"`
	BaseModel
}

// TableName sets the table name.
func (Page) TableName() string { return "pages" }

// IsSystem reports whether the page is a protected system page.
func (p *Page) IsSystem() bool { return SystemPageSlugs[p.Slug] }
