//go:generate mockery --name StatsService --output ./mocks --outpkg mocks --case=underscore --structname MockStatsService

// internal/service/stats_service.go
package service

import (
	"context"
	"sort"
	"time"

	"wortschatz_keep/internal/config"
	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsService は学習統計レポートを計算する読み取り専用サービスです。
// キャッシュは持たず、呼び出しごとにオーナーの全履歴から再計算する
// (語彙数は手入力で増える前提なので正しさ優先で問題ない)。
type StatsService interface {
	GetStats(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*model.StatsReport, error)
}

type statsService struct {
	db        *gorm.DB
	entryRepo repository.EntryRepository
	cfg       *config.Config
}

func NewStatsService(db *gorm.DB, entryRepo repository.EntryRepository, cfg *config.Config) StatsService {
	return &statsService{
		db:        db,
		entryRepo: entryRepo,
		cfg:       cfg,
	}
}

func (s *statsService) GetStats(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*model.StatsReport, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	entries, err := s.entryRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Failed to fetch entries for stats", "error", err)
		return nil, model.ErrInternalServer
	}

	report := buildStatsReport(entries, asOf, s.cfg.App.StatsWindowDays)
	logger.Info("Stats computed", "total", report.Total, "streak", report.Streak)
	return report, nil
}

// buildStatsReport は取得済みの全履歴から1パスでレポートを組み立てる純粋関数です。
// カレンダー日の判定は asOf のロケーション (オーナーの基準タイムゾーン) で行う。
func buildStatsReport(entries []*model.Entry, asOf time.Time, windowDays int) *model.StatsReport {
	loc := asOf.Location()
	today := dateOnly(asOf, loc)

	typeCounts := make(map[string]int)
	difficultyCounts := make(map[model.Difficulty]int, len(model.Difficulties))
	for _, d := range model.Difficulties {
		difficultyCounts[d] = 0
	}
	dayCounts := make(map[time.Time]int)

	for _, e := range entries {
		wt := model.WordTypeOther
		if e.WordType != nil {
			wt = *e.WordType
		}
		typeCounts[wt]++
		difficultyCounts[e.Difficulty]++
		dayCounts[dateOnly(e.CreatedAt, loc)]++
	}

	// 品詞別ヒストグラム (件数の降順、同数は名前順で安定させる)
	byType := make([]model.TypeCount, 0, len(typeCounts))
	for wt, count := range typeCounts {
		byType = append(byType, model.TypeCount{WordType: wt, Count: count})
	}
	sort.Slice(byType, func(i, j int) bool {
		if byType[i].Count != byType[j].Count {
			return byType[i].Count > byType[j].Count
		}
		return byType[i].WordType < byType[j].WordType
	})

	// 日別系列: [asOf - (windowDays-1), asOf] のうち登録があった日のみ (ゼロ埋めしない)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))
	daily := make([]model.DailyCount, 0, len(dayCounts))
	distinctDays := make([]time.Time, 0, len(dayCounts))
	for day, count := range dayCounts {
		distinctDays = append(distinctDays, day)
		if !day.Before(windowStart) && !day.After(today) {
			daily = append(daily, model.DailyCount{Date: day.Format("2006-01-02"), Count: count})
		}
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	// ストリーク計算用に登録日を新しい順に並べる
	sort.Slice(distinctDays, func(i, j int) bool { return distinctDays[i].After(distinctDays[j]) })

	milestones := make([]model.Milestone, 0, len(model.MilestoneTargets))
	for _, m := range model.MilestoneTargets {
		milestones = append(milestones, model.Milestone{
			Target:  m.Target,
			Label:   m.Label,
			Icon:    m.Icon,
			Reached: len(entries) >= m.Target,
		})
	}

	return &model.StatsReport{
		Total:        len(entries),
		ByType:       byType,
		ByDifficulty: difficultyCounts,
		Daily:        daily,
		Streak:       calculateStreak(distinctDays, today),
		Milestones:   milestones,
	}
}

// calculateStreak は連続登録日数を計算するヘルパー関数。
// days は登録があった日 (重複なし、新しい順)、today は基準日。
//
// 基準日から1日ずつ遡って連続していればカウントする。例外は先頭のみ:
// 今日まだ登録がなくても昨日の登録があればストリークは生きている扱いとし、
// アンカーを1日ずらして続きを歩く。それ以外の1日の空白でストリークは終了する。
func calculateStreak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	anchor := today
	if days[0].Equal(today.AddDate(0, 0, -1)) {
		anchor = today.AddDate(0, 0, -1)
	}

	streak := 0
	for i, day := range days {
		expected := anchor.AddDate(0, 0, -i)
		if !day.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}

// dateOnly はタイムスタンプを指定ロケーションのカレンダー日 (00:00) に丸めます
func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
