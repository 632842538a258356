//go:generate mockery --name EntryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EntryRepository はオーナー単位でスコープされた語彙レコードのコレクションです。
// すべてのクエリ・更新は tenant_id で絞り込み、オーナー境界を越えない。
type EntryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.Entry) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, entryID uuid.UUID) (*model.Entry, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Entry, error)
	UpdateDifficulty(ctx context.Context, tx *gorm.DB, tenantID, entryID uuid.UUID, difficulty model.Difficulty) error
	Delete(ctx context.Context, tx *gorm.DB, tenantID, entryID uuid.UUID) error
}

type gormEntryRepository struct{}

func NewGormEntryRepository() EntryRepository {
	return &gormEntryRepository{}
}

func (r *gormEntryRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.Entry) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(entry)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23503" {
			// 外部キー違反 = オーナーが存在しない
			logger.Warn("Foreign key violation on create entry",
				"error", result.Error,
				"tenant_id", entry.TenantID.String(),
			)
			return model.ErrTenantNotFound
		}
		logger.Error("Error creating entry in DB",
			"error", result.Error,
			"tenant_id", entry.TenantID.String(),
			"german", entry.German,
		)
		return fmt.Errorf("gormEntryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEntryRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, entryID uuid.UUID) (*model.Entry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.Entry
	result := db.WithContext(ctx).Where("tenant_id = ? AND entry_id = ?", tenantID, entryID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// 存在しないのか他オーナーの所有なのかは呼び出し元に区別させない
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding entry by ID in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"entry_id", entryID.String(),
		)
		return nil, fmt.Errorf("gormEntryRepository.FindByID: %w", result.Error)
	}
	return &entry, nil
}

func (r *gormEntryRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Entry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.Entry
	result := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding entries by tenant in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormEntryRepository.FindByTenant: %w", result.Error)
	}
	return entries, nil
}

func (r *gormEntryRepository) UpdateDifficulty(ctx context.Context, tx *gorm.DB, tenantID, entryID uuid.UUID, difficulty model.Difficulty) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Entry{}).
		Where("tenant_id = ? AND entry_id = ?", tenantID, entryID).
		Update("difficulty", difficulty)
	if result.Error != nil {
		logger.Error("Error updating entry difficulty in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"entry_id", entryID.String(),
		)
		return fmt.Errorf("gormEntryRepository.UpdateDifficulty: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormEntryRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, entryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// 物理削除 (論理削除カラムは持たない)
	result := tx.WithContext(ctx).Where("tenant_id = ? AND entry_id = ?", tenantID, entryID).Delete(&model.Entry{})
	if result.Error != nil {
		logger.Error("Error deleting entry in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"entry_id", entryID.String(),
		)
		return fmt.Errorf("gormEntryRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
