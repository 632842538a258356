// internal/service/entry_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 ---
func setupTestDBEntry() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// stubTranslator はテスト用のTranslator実装。設定した生テキストとエラーをそのまま返す。
type stubTranslator struct {
	raw string
	err error
}

func (s *stubTranslator) Translate(ctx context.Context, word string) (string, error) {
	return s.raw, s.err
}

const validModelOutput = `{
  "english": "dog",
  "german": "Hund",
  "word_type": "noun",
  "gender_article": "der",
  "gender_label": "m",
  "plural": "Hunde",
  "verb_forms": null,
  "example_sentence": "Der Hund bellt laut.",
  "sentence_translation": "The dog barks loudly.",
  "ipa": "hʊnt",
  "notes": null
}`

// --- Test CaptureEntry ---
func Test_entryService_CaptureEntry(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry() // トランザクション用DB (インメモリ)
	mockEntryRepo := new(mocks.EntryRepository)
	translator := &stubTranslator{}
	entryService := NewEntryService(db, mockEntryRepo, translator)

	tenantID := uuid.New()
	validReq := &model.CaptureEntryRequest{Word: "dog"}

	tests := []struct {
		name          string
		req           *model.CaptureEntryRequest
		translatorRaw string
		translatorErr error
		setupMock     func(entryRepo *mocks.EntryRepository)
		wantErr       error
		wantEntry     bool
	}{
		{
			name:          "正常系: 単語キャプチャ成功",
			req:           validReq,
			translatorRaw: validModelOutput,
			setupMock: func(entryRepo *mocks.EntryRepository) {
				entryRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Entry")).
					Run(func(args mock.Arguments) {
						entry := args.Get(2).(*model.Entry)
						assert.Equal(t, tenantID, entry.TenantID)
						assert.Equal(t, "dog", entry.English)
						assert.Equal(t, "Hund", entry.German)
						require.NotNil(t, entry.WordType)
						assert.Equal(t, "noun", *entry.WordType)
						require.NotNil(t, entry.GenderArticle)
						assert.Equal(t, "der", *entry.GenderArticle)
						assert.Equal(t, model.DifficultyNew, entry.Difficulty)
						assert.NotEqual(t, uuid.Nil, entry.EntryID) // IDがセットされるはず
					}).Return(nil).Once()
			},
			wantErr:   nil,
			wantEntry: true,
		},
		{
			name: "異常系: 単語が空",
			req:  &model.CaptureEntryRequest{Word: ""},
			setupMock: func(entryRepo *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr:   model.ErrInvalidInput,
			wantEntry: false,
		},
		{
			name:          "異常系: 生成モデル呼び出しが失敗",
			req:           validReq,
			translatorErr: errors.New("api unavailable"),
			setupMock: func(entryRepo *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr:   model.ErrTranslationFailed,
			wantEntry: false,
		},
		{
			name:          "異常系: モデル出力がJSONとして解釈できない",
			req:           validReq,
			translatorRaw: "Sorry, I cannot help with that.",
			setupMock: func(entryRepo *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr:   model.ErrTranslationFailed,
			wantEntry: false,
		},
		{
			name:          "異常系: モデル出力の必須フィールドが欠けている",
			req:           validReq,
			translatorRaw: `{"english": "dog", "german": "", "example_sentence": "Der Hund bellt."}`,
			setupMock: func(entryRepo *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr:   model.ErrTranslationFailed,
			wantEntry: false,
		},
		{
			name:          "異常系: オーナーが存在しない (外部キー違反)",
			req:           validReq,
			translatorRaw: validModelOutput,
			setupMock: func(entryRepo *mocks.EntryRepository) {
				entryRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Entry")).
					Return(model.ErrTenantNotFound).Once()
			},
			wantErr:   model.ErrTenantNotFound,
			wantEntry: false,
		},
		{
			name:          "異常系: リポジトリCreateでDBエラー",
			req:           validReq,
			translatorRaw: validModelOutput,
			setupMock: func(entryRepo *mocks.EntryRepository) {
				entryRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Entry")).
					Return(errors.New("db error on create")).Once()
			},
			wantErr:   model.ErrInternalServer,
			wantEntry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// モックのリセットと再設定
			mockEntryRepo.Mock = mock.Mock{}
			translator.raw = tt.translatorRaw
			translator.err = tt.translatorErr
			if tt.setupMock != nil {
				tt.setupMock(mockEntryRepo)
			}

			entry, err := entryService.CaptureEntry(ctx, tenantID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				assert.Equal(t, "dog", entry.English)
				assert.Equal(t, "Hund", entry.German)
				assert.Equal(t, tenantID, entry.TenantID)
				assert.NotEqual(t, uuid.Nil, entry.EntryID)
			}

			mockEntryRepo.AssertExpectations(t)
		})
	}
}

// --- Test GetEntry ---
func Test_entryService_GetEntry(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry()
	mockEntryRepo := new(mocks.EntryRepository)
	entryService := NewEntryService(db, mockEntryRepo, &stubTranslator{})

	tenantID := uuid.New()
	entryID := uuid.New()
	expectedEntry := &model.Entry{
		EntryID:         entryID,
		TenantID:        tenantID,
		English:         "dog",
		German:          "Hund",
		ExampleSentence: "Der Hund bellt.",
		Difficulty:      model.DifficultyNew,
	}

	tests := []struct {
		name      string
		setupMock func(m *mocks.EntryRepository)
		wantErr   error
	}{
		{
			name: "正常系: エントリ取得成功",
			setupMock: func(m *mocks.EntryRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(expectedEntry, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: エントリが存在しない",
			setupMock: func(m *mocks.EntryRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEntryRepo.Mock = mock.Mock{}
			tt.setupMock(mockEntryRepo)

			entry, err := entryService.GetEntry(ctx, tenantID, entryID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				assert.Equal(t, expectedEntry, entry)
			}

			mockEntryRepo.AssertExpectations(t)
		})
	}
}

// --- Test UpdateDifficulty ---
func Test_entryService_UpdateDifficulty(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry()
	mockEntryRepo := new(mocks.EntryRepository)
	entryService := NewEntryService(db, mockEntryRepo, &stubTranslator{})

	tenantID := uuid.New()
	entryID := uuid.New()
	hard := "hard"
	invalid := "impossible"
	updatedEntry := &model.Entry{
		EntryID:    entryID,
		TenantID:   tenantID,
		English:    "dog",
		German:     "Hund",
		Difficulty: model.DifficultyHard,
	}

	tests := []struct {
		name      string
		req       *model.PatchDifficultyRequest
		setupMock func(m *mocks.EntryRepository)
		wantErr   error
	}{
		{
			name: "正常系: 難易度更新成功",
			req:  &model.PatchDifficultyRequest{Difficulty: &hard},
			setupMock: func(m *mocks.EntryRepository) {
				m.On("UpdateDifficulty", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID, model.DifficultyHard).
					Return(nil).Once()
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(updatedEntry, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: 難易度が未指定",
			req:  &model.PatchDifficultyRequest{Difficulty: nil},
			setupMock: func(m *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: 難易度が不正な値",
			req:  &model.PatchDifficultyRequest{Difficulty: &invalid},
			setupMock: func(m *mocks.EntryRepository) {
				// リポジトリは呼ばれないはず
			},
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "異常系: エントリが存在しない (または他オーナー所有)",
			req:  &model.PatchDifficultyRequest{Difficulty: &hard},
			setupMock: func(m *mocks.EntryRepository) {
				m.On("UpdateDifficulty", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID, model.DifficultyHard).
					Return(model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: リポジトリUpdateDifficultyでDBエラー",
			req:  &model.PatchDifficultyRequest{Difficulty: &hard},
			setupMock: func(m *mocks.EntryRepository) {
				m.On("UpdateDifficulty", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID, model.DifficultyHard).
					Return(errors.New("db error on update")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEntryRepo.Mock = mock.Mock{}
			tt.setupMock(mockEntryRepo)

			entry, err := entryService.UpdateDifficulty(ctx, tenantID, entryID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)
			} else {
				require.NoError(t, err)
				require.NotNil(t, entry)
				assert.Equal(t, model.DifficultyHard, entry.Difficulty)
			}

			mockEntryRepo.AssertExpectations(t)
		})
	}
}

// --- Test DeleteEntry ---
func Test_entryService_DeleteEntry(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry()
	mockEntryRepo := new(mocks.EntryRepository)
	entryService := NewEntryService(db, mockEntryRepo, &stubTranslator{})

	tenantID := uuid.New()
	entryID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(m *mocks.EntryRepository)
		wantErr   error
	}{
		{
			name: "正常系: エントリ削除成功",
			setupMock: func(m *mocks.EntryRepository) {
				m.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: エントリが存在しない",
			setupMock: func(m *mocks.EntryRepository) {
				m.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "異常系: リポジトリDeleteでDBエラー",
			setupMock: func(m *mocks.EntryRepository) {
				m.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, entryID).
					Return(errors.New("db error on delete")).Once()
			},
			wantErr: model.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEntryRepo.Mock = mock.Mock{}
			tt.setupMock(mockEntryRepo)

			err := entryService.DeleteEntry(ctx, tenantID, entryID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			mockEntryRepo.AssertExpectations(t)
		})
	}
}

// --- Test ListEntries ---
func Test_entryService_ListEntries(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEntry()
	mockEntryRepo := new(mocks.EntryRepository)
	entryService := NewEntryService(db, mockEntryRepo, &stubTranslator{})

	tenantID := uuid.New()
	expectedEntries := []*model.Entry{
		{EntryID: uuid.New(), TenantID: tenantID, English: "dog", German: "Hund"},
		{EntryID: uuid.New(), TenantID: tenantID, English: "cat", German: "Katze"},
	}

	t.Run("正常系: 一覧取得成功", func(t *testing.T) {
		mockEntryRepo.Mock = mock.Mock{}
		mockEntryRepo.On("FindByTenant", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).
			Return(expectedEntries, nil).Once()

		entries, err := entryService.ListEntries(ctx, tenantID)

		require.NoError(t, err)
		assert.Equal(t, expectedEntries, entries)
		mockEntryRepo.AssertExpectations(t)
	})

	t.Run("異常系: リポジトリでDBエラー", func(t *testing.T) {
		mockEntryRepo.Mock = mock.Mock{}
		mockEntryRepo.On("FindByTenant", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).
			Return(nil, errors.New("db error on list")).Once()

		entries, err := entryService.ListEntries(ctx, tenantID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		assert.Nil(t, entries)
		mockEntryRepo.AssertExpectations(t)
	})
}
