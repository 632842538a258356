// internal/handlers/entry_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/service"
	"wortschatz_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type EntryHandler struct {
	service service.EntryService
	logger  *slog.Logger
}

func NewEntryHandler(s service.EntryService, logger *slog.Logger) *EntryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EntryHandler{
		service: s,
		logger:  logger,
	}
}

// CaptureEntry は単語を受け取り、生成モデル経由で語彙レコードを作成するハンドラ
func (h *EntryHandler) CaptureEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CaptureEntry"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	var req model.CaptureEntryRequest
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

			// 最初のエラーを代表としてクライアントに返す
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

	entry, err := h.service.CaptureEntry(r.Context(), tenantID, &req)
	if err != nil {
		logger.Error("Error capturing entry in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry captured successfully", slog.String("entry_id", entry.EntryID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, entry, logger)
}

// GetEntries は語彙レコードの一覧を取得するためのハンドラ (作成日時の降順)
func (h *EntryHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEntries"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	entries, err := h.service.ListEntries(r.Context(), tenantID)
	if err != nil {
		logger.Error("Error listing entries in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if entries == nil {
		entries = []*model.Entry{}
	}
	logger.Info("Entries listed successfully", slog.Int("count", len(entries)))
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

// GetEntry は特定の語彙レコードを取得するためのハンドラ
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetEntry"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	entryIDStr := chi.URLParam(r, "entry_id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		logger.Warn("Invalid entry ID format in URL", slog.String("entry_id_str", entryIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "entry_idの形式が正しくありません。", "entry_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("entry_id", entryID.String()))

	entry, err := h.service.GetEntry(r.Context(), tenantID, entryID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Entry not found in service", slog.Any("error", err))
		} else {
			logger.Error("Error getting entry from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry retrieved successfully")
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// PatchEntryDifficulty は難易度 (作成後に変更できる唯一のフィールド) を更新するハンドラ
func (h *EntryHandler) PatchEntryDifficulty(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchEntryDifficulty"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	entryIDStr := chi.URLParam(r, "entry_id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		logger.Warn("Invalid entry ID format in URL", slog.String("entry_id_str", entryIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "entry_idの形式が正しくありません。", "entry_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("entry_id", entryID.String()))

	var req model.PatchDifficultyRequest
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

	entry, err := h.service.UpdateDifficulty(r.Context(), tenantID, entryID, &req)
	if err != nil {
		logger.Error("Error updating entry difficulty in service", slog.Any("error", err), slog.Any("request", req))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry difficulty updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

// DeleteEntry は特定の語彙レコードを物理削除するためのハンドラ
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteEntry"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	entryIDStr := chi.URLParam(r, "entry_id")
	entryID, err := uuid.Parse(entryIDStr)
	if err != nil {
		logger.Warn("Invalid entry ID format in URL", slog.String("entry_id_str", entryIDStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "entry_idの形式が正しくありません。", "entry_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("entry_id", entryID.String()))

	if err := h.service.DeleteEntry(r.Context(), tenantID, entryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Entry not found for deletion", slog.Any("error", err))
		} else {
			logger.Error("Error deleting entry in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Entry deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
