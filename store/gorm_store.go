package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinical-trials-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore keeps each record type in its own table. It backs MySQL and
// SQLite deployments.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an opened gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the application table and the seven section tables.
func (s *GormStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// DB exposes the underlying handle.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateApplication(ctx context.Context) (*models.Application, error) {
	app := models.NewApplication(uuid.NewString(), time.Now())
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (s *GormStore) ListApplications(ctx context.Context) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *GormStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&app).Error; err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

func (s *GormStore) TouchApplication(ctx context.Context, id string) error {
	if _, err := s.GetApplication(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

func (s *GormStore) DeleteApplication(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Application{}).Error
}

func (s *GormStore) InsertSection(ctx context.Context, section models.Section) error {
	section.Ref().ID = uuid.NewString()
	return s.db.WithContext(ctx).Create(section).Error
}

func (s *GormStore) UpsertSection(ctx context.Context, section models.Section, keys []string) error {
	ref := section.Ref()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		err := tx.Table(section.TableName()).
			Where("application_id = ?", ref.ApplicationID).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			ref.ID = uuid.NewString()
			return tx.Create(section).Error
		}
		ref.ID = ids[0]
		if keys == nil {
			return tx.Save(section).Error
		}

		fields := models.FieldNames(section, keys)
		if len(fields) == 0 {
			return nil
		}
		// Select makes Updates write zero values for the named fields too.
		return tx.Model(section).Select(fields).Updates(section).Error
	})
}

func (s *GormStore) FindSection(ctx context.Context, applicationID string, dst models.Section) error {
	err := s.db.WithContext(ctx).Where("application_id = ?", applicationID).Take(dst).Error
	return translate(err)
}

func (s *GormStore) DeleteSection(ctx context.Context, applicationID string, kind models.Section) error {
	return s.db.WithContext(ctx).
		Table(kind.TableName()).
		Where("application_id = ?", applicationID).
		Delete(kind).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
