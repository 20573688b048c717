package model

// User roles. ADMIN has the full permission set; MEMBER is self-service only.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// User maps to the users table.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'MEMBER'"     json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Registrations []EventRegistration `gorm:"foreignKey:UserID" json:"-"`
	Orders        []CafeteriaOrder    `gorm:"foreignKey:UserID" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
