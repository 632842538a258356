//go:generate mockery --name TenantService --output ./mocks --outpkg mocks --case=underscore --structname MockTenantService

// internal/service/tenant_service.go
package service

import (
	"context"
	"errors"

	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantService interface {
	CreateTenant(ctx context.Context, req *model.RegisterTenantRequest) (*model.Tenant, error)
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error)
}

type tenantService struct {
	db         *gorm.DB
	tenantRepo repository.TenantRepository
}

func NewTenantService(db *gorm.DB, repo repository.TenantRepository) TenantService {
	return &tenantService{db: db, tenantRepo: repo}
}

func (s *tenantService) CreateTenant(ctx context.Context, req *model.RegisterTenantRequest) (*model.Tenant, error) {
	logger := middleware.GetLogger(ctx)

	if req.Name == "" || req.Email == "" {
		return nil, model.ErrInvalidInput
	}

	tenant := &model.Tenant{
		TenantID: uuid.New(), // Service層でUUIDを生成
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tenantRepo.Create(ctx, tx, tenant); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.ErrConflict
			}
			logger.Error("Error creating tenant in repo", "error", err)
			return model.ErrInternalServer
		}
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Tenant created", "tenant_id", tenant.TenantID, "name", tenant.Name)
	return tenant, nil
}

// GetTenant は指定されたIDのテナントを取得します (認証用などに利用)
func (s *tenantService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		// model.ErrNotFound や model.ErrInternalServer が返る想定
		return nil, err
	}
	return tenant, nil
}
