// internal/handlers/tenant_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/service"
	"wortschatz_keep/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type TenantHandler struct {
	service service.TenantService
	logger  *slog.Logger
}

func NewTenantHandler(s service.TenantService, logger *slog.Logger) *TenantHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantHandler{
		service: s,
		logger:  logger,
	}
}

// CreateTenant は新しいテナント (オーナー) を登録するためのハンドラ
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateTenant"))

	var req model.RegisterTenantRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	tenant, err := h.service.CreateTenant(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			logger.Info("Tenant already exists", slog.String("email", req.Email))
			appErr := model.NewAppError("TENANT_ALREADY_EXISTS", "このメールアドレスは既に登録されています。", "email", model.ErrConflict)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error creating tenant in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp := model.TenantResponse{
		TenantID:  tenant.TenantID,
		Name:      tenant.Name,
		Email:     tenant.Email,
		IsActive:  tenant.IsActive,
		CreatedAt: tenant.CreatedAt,
	}
	logger.Info("Tenant created successfully", slog.String("tenant_id", tenant.TenantID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}
