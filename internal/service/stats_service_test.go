// internal/service/stats_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wortschatz_keep/internal/config"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func strp(s string) *string { return &s }

// --- Test calculateStreak ---
func Test_calculateStreak(t *testing.T) {
	today := day(2025, 6, 10)

	tests := []struct {
		name string
		days []time.Time // 新しい順であること
		want int
	}{
		{
			name: "登録日なし",
			days: []time.Time{},
			want: 0,
		},
		{
			name: "今日を含む3日連続",
			days: []time.Time{day(2025, 6, 10), day(2025, 6, 9), day(2025, 6, 8)},
			want: 3,
		},
		{
			name: "今日は未登録だが昨日まで2日連続 (ストリークは継続扱い)",
			days: []time.Time{day(2025, 6, 9), day(2025, 6, 8)},
			want: 2,
		},
		{
			name: "今日は登録済みだが昨日が抜けている",
			days: []time.Time{day(2025, 6, 10), day(2025, 6, 8)},
			want: 1,
		},
		{
			name: "最後の登録が一昨日 (猶予は昨日まで)",
			days: []time.Time{day(2025, 6, 8), day(2025, 6, 7)},
			want: 0,
		},
		{
			name: "今日のみ",
			days: []time.Time{day(2025, 6, 10)},
			want: 1,
		},
		{
			name: "連続の途中に抜けがある",
			days: []time.Time{day(2025, 6, 10), day(2025, 6, 9), day(2025, 6, 7), day(2025, 6, 6)},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateStreak(tt.days, today))
		})
	}
}

// --- Test buildStatsReport ---
func Test_buildStatsReport(t *testing.T) {
	asOf := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("正常系: エントリなし", func(t *testing.T) {
		report := buildStatsReport(nil, asOf, 30)

		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.ByType)
		assert.Empty(t, report.Daily)
		assert.Equal(t, 0, report.Streak)
		// 難易度別カウントは全キーがゼロ埋めされていること
		assert.Len(t, report.ByDifficulty, len(model.Difficulties))
		for _, d := range model.Difficulties {
			assert.Equal(t, 0, report.ByDifficulty[d])
		}
		// マイルストーンは全件返り、どれも未達成
		assert.Len(t, report.Milestones, len(model.MilestoneTargets))
		for _, m := range report.Milestones {
			assert.False(t, m.Reached)
		}
	})

	t.Run("正常系: 品詞別カウントと並び順", func(t *testing.T) {
		entries := []*model.Entry{
			{WordType: strp("noun"), Difficulty: model.DifficultyNew, CreatedAt: asOf},
			{WordType: strp("noun"), Difficulty: model.DifficultyEasy, CreatedAt: asOf},
			{WordType: strp("verb"), Difficulty: model.DifficultyNew, CreatedAt: asOf},
			{WordType: nil, Difficulty: model.DifficultyHard, CreatedAt: asOf}, // 品詞不明はotherに集約
		}

		report := buildStatsReport(entries, asOf, 30)

		assert.Equal(t, 4, report.Total)
		// 件数の降順、同数は名前順
		require.Len(t, report.ByType, 3)
		assert.Equal(t, model.TypeCount{WordType: "noun", Count: 2}, report.ByType[0])
		assert.Equal(t, model.TypeCount{WordType: "other", Count: 1}, report.ByType[1])
		assert.Equal(t, model.TypeCount{WordType: "verb", Count: 1}, report.ByType[2])

		assert.Equal(t, 2, report.ByDifficulty[model.DifficultyNew])
		assert.Equal(t, 1, report.ByDifficulty[model.DifficultyEasy])
		assert.Equal(t, 1, report.ByDifficulty[model.DifficultyHard])
		assert.Equal(t, 0, report.ByDifficulty[model.DifficultyMedium])
	})

	t.Run("正常系: 日別系列は期間内のみ・日付昇順・ゼロ埋めなし", func(t *testing.T) {
		entries := []*model.Entry{
			{Difficulty: model.DifficultyNew, CreatedAt: asOf},                    // 今日
			{Difficulty: model.DifficultyNew, CreatedAt: asOf},                    // 今日2件目
			{Difficulty: model.DifficultyNew, CreatedAt: asOf.AddDate(0, 0, -5)},  // 5日前
			{Difficulty: model.DifficultyNew, CreatedAt: asOf.AddDate(0, 0, -40)}, // 期間外
		}

		report := buildStatsReport(entries, asOf, 30)

		require.Len(t, report.Daily, 2)
		assert.Equal(t, model.DailyCount{Date: "2025-06-05", Count: 1}, report.Daily[0])
		assert.Equal(t, model.DailyCount{Date: "2025-06-10", Count: 2}, report.Daily[1])
		// 期間外のエントリも合計やマイルストーンには含まれる
		assert.Equal(t, 4, report.Total)
	})

	t.Run("正常系: 同日の複数登録はストリーク1日分", func(t *testing.T) {
		entries := []*model.Entry{
			{Difficulty: model.DifficultyNew, CreatedAt: asOf},
			{Difficulty: model.DifficultyNew, CreatedAt: asOf.Add(-2 * time.Hour)},
			{Difficulty: model.DifficultyNew, CreatedAt: asOf.AddDate(0, 0, -1)},
		}

		report := buildStatsReport(entries, asOf, 30)
		assert.Equal(t, 2, report.Streak)
	})

	t.Run("正常系: マイルストーンは累計件数に対して単調", func(t *testing.T) {
		entries := make([]*model.Entry, 25)
		for i := range entries {
			entries[i] = &model.Entry{Difficulty: model.DifficultyNew, CreatedAt: asOf}
		}

		report := buildStatsReport(entries, asOf, 30)

		reachedDone := false
		for _, m := range report.Milestones {
			if m.Target <= 25 {
				assert.True(t, m.Reached, "target %d should be reached", m.Target)
				assert.False(t, reachedDone, "reached milestones must precede unreached ones")
			} else {
				assert.False(t, m.Reached, "target %d should not be reached", m.Target)
				reachedDone = true
			}
		}
	})
}

// --- Test GetStats ---
func Test_statsService_GetStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry()
	mockEntryRepo := new(mocks.EntryRepository)
	cfg := &config.Config{}
	cfg.App.StatsWindowDays = 30
	statsService := NewStatsService(db, mockEntryRepo, cfg)

	tenantID := uuid.New()
	asOf := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("正常系: レポート取得成功", func(t *testing.T) {
		mockEntryRepo.Mock = mock.Mock{}
		entries := []*model.Entry{
			{EntryID: uuid.New(), TenantID: tenantID, WordType: strp("noun"), Difficulty: model.DifficultyNew, CreatedAt: asOf},
		}
		mockEntryRepo.On("FindByTenant", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).
			Return(entries, nil).Once()

		report, err := statsService.GetStats(ctx, tenantID, asOf)

		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, 1, report.Total)
		assert.Equal(t, 1, report.Streak)
		mockEntryRepo.AssertExpectations(t)
	})

	t.Run("異常系: リポジトリでDBエラー", func(t *testing.T) {
		mockEntryRepo.Mock = mock.Mock{}
		mockEntryRepo.On("FindByTenant", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).
			Return(nil, errors.New("db error on find")).Once()

		report, err := statsService.GetStats(ctx, tenantID, asOf)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		assert.Nil(t, report)
		mockEntryRepo.AssertExpectations(t)
	})
}
