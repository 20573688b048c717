package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"asso-portal/internal/model"
	"asso-portal/internal/repository"
	pkgerrors "asso-portal/pkg/errors"
)

// newTestRepository builds a Repository aggregate over in-memory mocks.
// The order mock shares the product mock so stock movements are observable.
func newTestRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		users:         newMockUserRepo(),
		events:        newMockEventRepo(),
		registrations: newMockRegistrationRepo(),
		categories:    newMockCategoryRepo(),
		products:      newMockProductRepo(),
		pages:         newMockPageRepo(),
		settings:      newMockSettingRepo(),
		media:         newMockMediaRepo(),
	}
	m.orders = newMockOrderRepo(m.products)
	m.categories.products = m.products
	repo := &repository.Repository{
		User:         m.users,
		Event:        m.events,
		Registration: m.registrations,
		Category:     m.categories,
		Product:      m.products,
		Order:        m.orders,
		Page:         m.pages,
		Setting:      m.settings,
		Media:        m.media,
	}
	return repo, m
}

type mocks struct {
	users         *mockUserRepo
	events        *mockEventRepo
	registrations *mockRegistrationRepo
	categories    *mockCategoryRepo
	products      *mockProductRepo
	orders        *mockOrderRepo
	pages         *mockPageRepo
	settings      *mockSettingRepo
	media         *mockMediaRepo
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		m.nextID++
		user.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var result []model.User
	for i, id := range ids {
		if i >= offset && len(result) < limit {
			result = append(result, *m.users[id])
		}
	}
	return result, int64(len(m.users)), nil
}

func (m *mockUserRepo) CountOwnership(_ context.Context, _ string) (int64, int64, error) {
	return 0, 0, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	photos map[string]*model.EventPhoto
	nextID int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events: make(map[string]*model.Event),
		photos: make(map[string]*model.EventPhoto),
	}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.ID == "" {
		m.nextID++
		event.ID = fmt.Sprintf("event-%d", m.nextID)
	}
	event.CreatedAt = time.Now()
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) List(_ context.Context, offset, limit int) ([]model.Event, int64, error) {
	var result []model.Event
	for _, e := range m.events {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := int64(len(result))
	if offset < len(result) {
		end := offset + limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	} else {
		result = nil
	}
	return result, total, nil
}

func (m *mockEventRepo) ListPublished(_ context.Context) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.IsPublished {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockEventRepo) ListPublishedUpcoming(_ context.Context, now time.Time) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if e.IsPublished && e.Date.After(now) {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockEventRepo) AddPhoto(_ context.Context, photo *model.EventPhoto) error {
	if photo.ID == "" {
		m.nextID++
		photo.ID = fmt.Sprintf("photo-%d", m.nextID)
	}
	m.photos[photo.ID] = photo
	return nil
}

func (m *mockEventRepo) GetPhoto(_ context.Context, id string) (*model.EventPhoto, error) {
	if p, ok := m.photos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) DeletePhoto(_ context.Context, id string) error {
	delete(m.photos, id)
	return nil
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	registrations map[string]*model.EventRegistration
	nextID        int
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{registrations: make(map[string]*model.EventRegistration)}
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.EventRegistration) error {
	for _, r := range m.registrations {
		if r.UserID == reg.UserID && r.EventID == reg.EventID {
			return gorm.ErrDuplicatedKey
		}
	}
	if reg.ID == "" {
		m.nextID++
		reg.ID = fmt.Sprintf("reg-%d", m.nextID)
	}
	reg.CreatedAt = time.Now()
	m.registrations[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*model.EventRegistration, error) {
	if r, ok := m.registrations[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) GetByUserAndEvent(_ context.Context, userID, eventID string) (*model.EventRegistration, error) {
	for _, r := range m.registrations {
		if r.UserID == userID && r.EventID == eventID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id string) error {
	delete(m.registrations, id)
	return nil
}

func (m *mockRegistrationRepo) ListByEvent(_ context.Context, eventID string) ([]model.EventRegistration, error) {
	var result []model.EventRegistration
	for _, r := range m.registrations {
		if r.EventID == eventID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRegistrationRepo) ListByUser(_ context.Context, userID string) ([]model.EventRegistration, error) {
	var result []model.EventRegistration
	for _, r := range m.registrations {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRegistrationRepo) CountByEvent(_ context.Context, eventID string) (int64, error) {
	var count int64
	for _, r := range m.registrations {
		if r.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.ProductCategory
	products   *mockProductRepo
	nextID     int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.ProductCategory)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *model.ProductCategory) error {
	if category.ID == "" {
		m.nextID++
		category.ID = fmt.Sprintf("cat-%d", m.nextID)
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.ProductCategory, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) Update(_ context.Context, category *model.ProductCategory) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.ProductCategory, error) {
	var result []model.ProductCategory
	for _, c := range m.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockCategoryRepo) ListActive(ctx context.Context) ([]model.ProductCategory, error) {
	all, _ := m.List(ctx)
	var result []model.ProductCategory
	for _, c := range all {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepo) CountProducts(_ context.Context, id string) (int64, error) {
	if m.products == nil {
		return 0, nil
	}
	var count int64
	for _, p := range m.products.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			count++
		}
	}
	return count, nil
}

func (m *mockCategoryRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, c := range m.categories {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

// ── Mock ProductRepository ──

type mockProductRepo struct {
	products map[string]*model.Product
	nextID   int
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*model.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	if product.ID == "" {
		m.nextID++
		product.ID = fmt.Sprintf("prod-%d", m.nextID)
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	var result []model.Product
	for _, p := range m.products {
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.IsActive != nil && p.IsActive != *filter.IsActive {
			continue
		}
		if filter.IsAvailable != nil && p.IsAvailable != *filter.IsAvailable {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProductRepo) ListAvailable(_ context.Context) ([]model.Product, error) {
	var result []model.Product
	for _, p := range m.products {
		if p.IsActive && p.IsAvailable && p.Stock > 0 {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProductRepo) Stats(_ context.Context) (*repository.CatalogStats, error) {
	stats := &repository.CatalogStats{}
	for _, p := range m.products {
		if !p.IsActive {
			continue
		}
		stats.TotalProducts++
		if p.IsAvailable {
			stats.AvailableProducts++
		}
		if p.Stock == 0 {
			stats.OutOfStock++
		} else if p.Stock <= 5 {
			stats.LowStock++
		}
	}
	return stats, nil
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	orders   map[string]*model.CafeteriaOrder
	products *mockProductRepo
	nextID   int
}

func newMockOrderRepo(products *mockProductRepo) *mockOrderRepo {
	return &mockOrderRepo{
		orders:   make(map[string]*model.CafeteriaOrder),
		products: products,
	}
}

// CreateWithStock mirrors the transactional semantics: either every line's
// stock covers its quantity and all are decremented, or nothing changes.
func (m *mockOrderRepo) CreateWithStock(_ context.Context, order *model.CafeteriaOrder) error {
	for _, item := range order.Items {
		product, ok := m.products.products[item.ProductID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		if product.Stock < item.Quantity {
			return pkgerrors.ErrInsufficientStock
		}
	}
	for i := range order.Items {
		product := m.products.products[order.Items[i].ProductID]
		product.Stock -= order.Items[i].Quantity
		order.Items[i].Product = product
	}
	if order.ID == "" {
		m.nextID++
		order.ID = fmt.Sprintf("order-%d", m.nextID)
	}
	order.CreatedAt = time.Now()
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) CancelWithRestock(_ context.Context, order *model.CafeteriaOrder) error {
	stored, ok := m.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.OrderStatusPending {
		return pkgerrors.ErrOrderNotCancellable
	}
	for _, item := range stored.Items {
		if product, ok := m.products.products[item.ProductID]; ok {
			product.Stock += item.Quantity
		}
	}
	stored.Status = model.OrderStatusCancelled
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.CafeteriaOrder, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	order, ok := m.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepo) List(_ context.Context, offset, limit int) ([]model.CafeteriaOrder, int64, error) {
	var result []model.CafeteriaOrder
	for _, o := range m.orders {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := int64(len(result))
	if offset < len(result) {
		end := offset + limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	} else {
		result = nil
	}
	return result, total, nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]model.CafeteriaOrder, error) {
	var result []model.CafeteriaOrder
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) ListByStatusBetween(_ context.Context, status string, from, to time.Time) ([]model.CafeteriaOrder, error) {
	var result []model.CafeteriaOrder
	for _, o := range m.orders {
		if o.Status == status && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *mockOrderRepo) ListBetween(_ context.Context, from, to time.Time) ([]model.CafeteriaOrder, error) {
	var result []model.CafeteriaOrder
	for _, o := range m.orders {
		if !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ── Mock PageRepository ──

type mockPageRepo struct {
	pages  map[string]*model.Page
	nextID int
}

func newMockPageRepo() *mockPageRepo {
	return &mockPageRepo{pages: make(map[string]*model.Page)}
}

func (m *mockPageRepo) Create(_ context.Context, page *model.Page) error {
	if page.ID == "" {
		m.nextID++
		page.ID = fmt.Sprintf("page-%d", m.nextID)
	}
	m.pages[page.ID] = page
	return nil
}

func (m *mockPageRepo) GetByID(_ context.Context, id string) (*model.Page, error) {
	if p, ok := m.pages[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPageRepo) GetBySlug(_ context.Context, slug string) (*model.Page, error) {
	for _, p := range m.pages {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPageRepo) Update(_ context.Context, page *model.Page) error {
	m.pages[page.ID] = page
	return nil
}

func (m *mockPageRepo) Delete(_ context.Context, id string) error {
	delete(m.pages, id)
	return nil
}

func (m *mockPageRepo) List(_ context.Context) ([]model.Page, error) {
	var result []model.Page
	for _, p := range m.pages {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Slug < result[j].Slug })
	return result, nil
}

func (m *mockPageRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, p := range m.pages {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	settings map[string]*model.Setting
	// listCalls counts full loads, letting cache tests observe hits.
	listCalls int
	// upsertManyErr makes the next batch write fail without applying
	// anything, like a rolled-back transaction.
	upsertManyErr error
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{settings: make(map[string]*model.Setting)}
}

func (m *mockSettingRepo) set(key, value string) {
	m.settings[key] = &model.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
}

func (m *mockSettingRepo) Get(_ context.Context, key string) (*model.Setting, error) {
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) List(_ context.Context) ([]model.Setting, error) {
	m.listCalls++
	var result []model.Setting
	for _, s := range m.settings {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *mockSettingRepo) ListByGroup(_ context.Context, group string) ([]model.Setting, error) {
	var result []model.Setting
	for _, s := range m.settings {
		if s.Group == group {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *mockSettingRepo) Upsert(_ context.Context, key, value string) error {
	if s, ok := m.settings[key]; ok {
		s.Value = value
		s.UpdatedAt = time.Now()
		return nil
	}
	m.set(key, value)
	return nil
}

func (m *mockSettingRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	if m.upsertManyErr != nil {
		return m.upsertManyErr
	}
	for key, value := range values {
		if err := m.Upsert(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// ── Mock MediaRepository ──

type mockMediaRepo struct {
	media  map[string]*model.Media
	nextID int
}

func newMockMediaRepo() *mockMediaRepo {
	return &mockMediaRepo{media: make(map[string]*model.Media)}
}

func (m *mockMediaRepo) Create(_ context.Context, media *model.Media) error {
	if media.ID == "" {
		m.nextID++
		media.ID = fmt.Sprintf("media-%d", m.nextID)
	}
	media.CreatedAt = time.Now()
	m.media[media.ID] = media
	return nil
}

func (m *mockMediaRepo) GetByID(_ context.Context, id string) (*model.Media, error) {
	if v, ok := m.media[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMediaRepo) Delete(_ context.Context, id string) error {
	delete(m.media, id)
	return nil
}

func (m *mockMediaRepo) List(_ context.Context, offset, limit int) ([]model.Media, int64, error) {
	var result []model.Media
	for _, v := range m.media {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	total := int64(len(result))
	if offset < len(result) {
		end := offset + limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	} else {
		result = nil
	}
	return result, total, nil
}

func (m *mockMediaRepo) UpdateAlt(_ context.Context, id, alt string) error {
	v, ok := m.media[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Alt = &alt
	return nil
}
