//go:generate mockery --name EntryService --output ./mocks --outpkg mocks --case=underscore --structname MockEntryService

// internal/service/entry_service.go
package service

import (
	"context"
	"errors"

	"wortschatz_keep/internal/extraction"
	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
	"wortschatz_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryService interface {
	CaptureEntry(ctx context.Context, tenantID uuid.UUID, req *model.CaptureEntryRequest) (*model.Entry, error)
	GetEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*model.Entry, error)
	ListEntries(ctx context.Context, tenantID uuid.UUID) ([]*model.Entry, error)
	UpdateDifficulty(ctx context.Context, tenantID, entryID uuid.UUID, req *model.PatchDifficultyRequest) (*model.Entry, error)
	DeleteEntry(ctx context.Context, tenantID, entryID uuid.UUID) error
}

type entryService struct {
	db         *gorm.DB // トランザクション用にDB接続を持つ
	entryRepo  repository.EntryRepository
	translator Translator
}

func NewEntryService(db *gorm.DB, entryRepo repository.EntryRepository, translator Translator) EntryService {
	return &entryService{
		db:         db,
		entryRepo:  entryRepo,
		translator: translator,
	}
}

// CaptureEntry は単語キャプチャの一連の流れを実行します:
// 生成モデル呼び出し → 抽出・検証 → トランザクション内で永続化。
// 抽出・検証エラーはこのリクエスト限りの失敗であり、モデルへの自動リトライは行わない。
func (s *entryService) CaptureEntry(ctx context.Context, tenantID uuid.UUID, req *model.CaptureEntryRequest) (*model.Entry, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	if req.Word == "" {
		return nil, model.ErrInvalidInput
	}

	// 1. 生成モデルに問い合わせ (ストア書き込みより前、トランザクション外)
	raw, err := s.translator.Translate(ctx, req.Word)
	if err != nil {
		logger.Error("Translator call failed", "error", err, "word", req.Word)
		return nil, model.NewAppError("TRANSLATION_FAILED", "翻訳に失敗しました。", "", model.ErrTranslationFailed)
	}

	// 2. モデル出力を検証済みペイロードに変換
	payload, err := extraction.Parse(raw)
	if err != nil {
		switch {
		case errors.Is(err, extraction.ErrMalformedOutput):
			logger.Warn("Model output could not be parsed", "error", err, "word", req.Word)
			return nil, model.NewAppError("MALFORMED_OUTPUT", "翻訳に失敗しました。", "", model.ErrTranslationFailed)
		case errors.Is(err, extraction.ErrInvalidField):
			logger.Warn("Model output failed field validation", "error", err, "word", req.Word)
			return nil, model.NewAppError("INVALID_FIELD", "翻訳に失敗しました。", "", model.ErrTranslationFailed)
		default:
			logger.Error("Unexpected extraction error", "error", err)
			return nil, model.ErrInternalServer
		}
	}

	// 3. トランザクション内で永続化
	entry := &model.Entry{
		EntryID:             uuid.New(),
		TenantID:            tenantID,
		English:             payload.English,
		German:              payload.German,
		WordType:            payload.WordType,
		GenderArticle:       payload.GenderArticle,
		GenderLabel:         payload.GenderLabel,
		Plural:              payload.Plural,
		VerbForms:           payload.VerbForms,
		ExampleSentence:     payload.ExampleSentence,
		SentenceTranslation: payload.SentenceTranslation,
		IPA:                 payload.IPA,
		Notes:               payload.Notes,
		Difficulty:          model.DifficultyNew,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
			// 外部キー違反 (オーナー不在) はそのまま返す
			if errors.Is(err, model.ErrTenantNotFound) {
				return err
			}
			logger.Error("Error creating entry in transaction", "error", err)
			return model.ErrInternalServer
		}
		return nil // コミット
	})
	if err != nil {
		if errors.Is(err, model.ErrTenantNotFound) {
			return nil, err
		}
		logger.Error("Transaction failed for CaptureEntry", "error", err)
		return nil, model.ErrInternalServer
	}

	logger.Info("Entry captured", "entry_id", entry.EntryID, "german", entry.German)
	return entry, nil
}

func (s *entryService) GetEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*model.Entry, error) {
	entry, err := s.entryRepo.FindByID(ctx, s.db, tenantID, entryID)
	if err != nil {
		// エラーはリポジトリで変換済み (ErrNotFound など)
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, tenantID uuid.UUID) ([]*model.Entry, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)
	entries, err := s.entryRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		logger.Error("Error listing entries", "error", err)
		return nil, model.ErrInternalServer
	}
	return entries, nil
}

// UpdateDifficulty は作成後に変更できる唯一のフィールドである難易度を更新します。
// 同じ値で複数回呼び出しても結果は変わらない (冪等)。
func (s *entryService) UpdateDifficulty(ctx context.Context, tenantID, entryID uuid.UUID, req *model.PatchDifficultyRequest) (*model.Entry, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "entry_id", entryID)

	if req.Difficulty == nil {
		return nil, model.ErrInvalidInput
	}
	difficulty := model.Difficulty(*req.Difficulty)
	if !difficulty.IsValid() {
		return nil, model.ErrInvalidInput
	}

	var updated *model.Entry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.UpdateDifficulty(ctx, tx, tenantID, entryID, difficulty); err != nil {
			// 存在しない/他オーナー所有はどちらも NotFound として報告する
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrNotFound
			}
			logger.Error("Error updating difficulty in transaction", "error", err)
			return model.ErrInternalServer
		}

		var err error
		updated, err = s.entryRepo.FindByID(ctx, tx, tenantID, entryID)
		if err != nil {
			logger.Error("Error fetching updated entry in transaction", "error", err)
			return model.ErrInternalServer
		}
		return nil // コミット
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		return nil, model.ErrInternalServer
	}

	logger.Info("Entry difficulty updated", "difficulty", difficulty)
	return updated, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, tenantID, entryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "entry_id", entryID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.entryRepo.Delete(ctx, tx, tenantID, entryID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrNotFound
			}
			logger.Error("Error deleting entry in transaction", "error", err)
			return model.ErrInternalServer
		}
		return nil // コミット
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return model.ErrInternalServer
	}

	logger.Info("Entry deleted")
	return nil
}
