// internal/handlers/stats_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/service"
	"wortschatz_keep/internal/webutil"
)

type StatsHandler struct {
	service service.StatsService
	logger  *slog.Logger
}

func NewStatsHandler(s service.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{
		service: s,
		logger:  logger,
	}
}

// GetStats はオーナーの学習統計レポートを取得するハンドラ。
// 基準日時はサーバーのローカル時刻を使う (カレンダー日の判定に影響する)。
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStats"))

	tenantID, err := middleware.GetTenantIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("tenant_id", tenantID.String()))

	report, err := h.service.GetStats(r.Context(), tenantID, time.Now())
	if err != nil {
		logger.Error("Error computing stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Stats retrieved successfully", slog.Int("total", report.Total))
	webutil.RespondWithJSON(w, http.StatusOK, report, logger)
}
