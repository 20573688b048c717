package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User         UserRepository
	Event        EventRepository
	Registration RegistrationRepository
	Category     CategoryRepository
	Product      ProductRepository
	Order        OrderRepository
	Page         PageRepository
	Setting      SettingRepository
	Media        MediaRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Event:        NewEventRepo(db),
		Registration: NewRegistrationRepo(db),
		Category:     NewCategoryRepo(db),
		Product:      NewProductRepo(db),
		Order:        NewOrderRepo(db),
		Page:         NewPageRepo(db),
		Setting:      NewSettingRepo(db),
		Media:        NewMediaRepo(db),
	}
}
