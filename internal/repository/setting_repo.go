package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"asso-portal/internal/model"
)

// SettingRepository is the settings data-access interface.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	ListByGroup(ctx context.Context, group string) ([]model.Setting, error)
	// Upsert writes a value, creating the key when missing.
	Upsert(ctx context.Context, key, value string) error
	// UpsertMany writes every value in one transaction: either the whole
	// batch lands or none of it does.
	UpsertMany(ctx context.Context, values map[string]string) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo creates the GORM-backed SettingRepository.
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) List(ctx context.Context) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).
		Order(`"group" ASC, key ASC`).
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingRepo) ListByGroup(ctx context.Context, group string) ([]model.Setting, error) {
	var settings []model.Setting
	err := r.db.WithContext(ctx).
		Where(`"group" = ?`, group).
		Order("key ASC").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func upsertSetting(db *gorm.DB, key, value string) error {
	setting := model.Setting{Key: key, Value: value}
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": gorm.Expr("CURRENT_TIMESTAMP")}),
		}).
		Create(&setting).Error
}

func (r *settingRepo) Upsert(ctx context.Context, key, value string) error {
	return upsertSetting(r.db.WithContext(ctx), key, value)
}

func (r *settingRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if err := upsertSetting(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
