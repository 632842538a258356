// internal/model/entry.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// WordType は品詞の列挙型です
type WordType string

const (
	WordTypeNoun         WordType = "noun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
	WordTypeAdverb       WordType = "adverb"
	WordTypePreposition  WordType = "preposition"
	WordTypeConjunction  WordType = "conjunction"
	WordTypePronoun      WordType = "pronoun"
	WordTypeParticle     WordType = "particle"
	WordTypeInterjection WordType = "interjection"
	WordTypeNumeral      WordType = "numeral"
	WordTypePhrase       WordType = "phrase"
)

// validWordTypes は列挙メンバーシップ判定用のセット
var validWordTypes = map[WordType]bool{
	WordTypeNoun:         true,
	WordTypeVerb:         true,
	WordTypeAdjective:    true,
	WordTypeAdverb:       true,
	WordTypePreposition:  true,
	WordTypeConjunction:  true,
	WordTypePronoun:      true,
	WordTypeParticle:     true,
	WordTypeInterjection: true,
	WordTypeNumeral:      true,
	WordTypePhrase:       true,
}

func (t WordType) IsValid() bool {
	return validWordTypes[t]
}

// Difficulty は学習者が自分で設定する難易度タグです
type Difficulty string

const (
	DifficultyNew    Difficulty = "new"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties は集計時のゼロ埋めにも使う固定順リスト
var Difficulties = []Difficulty{DifficultyNew, DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyNew, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Entry は1件の語彙レコードを表します。
// JSONのフィールド名は初代クライアントとの互換のため snake_case を維持する。
// 任意フィールドはすべてNULL許容のポインタ型 (スキーマは追加のみで進化する前提)。
type Entry struct {
	EntryID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	English         string  `gorm:"not null" json:"english"`
	German          string  `gorm:"not null" json:"german"`
	WordType        *string `json:"word_type"`
	ExampleSentence string  `gorm:"not null" json:"example_sentence"`

	// 名詞専用フィールド (word_type == noun のときのみ非NULL)
	GenderArticle *string `json:"gender_article"` // der/die/das
	GenderLabel   *string `json:"gender_label"`   // m/f/n
	Plural        *string `json:"plural"`

	// 動詞専用フィールド (word_type == verb のときのみ非NULL)
	VerbForms *string `json:"verb_forms"` // "Präteritum, PartizipII"

	SentenceTranslation *string `json:"sentence_translation"`
	IPA                 *string `gorm:"column:ipa" json:"ipa"`
	Notes               *string `json:"notes"`

	// 作成後に変更できるのは difficulty のみ
	Difficulty Difficulty `gorm:"not null;default:new" json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Entry) TableName() string {
	return "entries"
}

// CaptureEntryRequest は単語キャプチャAPIのリクエストDTO
type CaptureEntryRequest struct {
	Word string `json:"word" validate:"required,min=1,max=200"`
}

// PatchDifficultyRequest は難易度更新リクエストDTO
type PatchDifficultyRequest struct {
	Difficulty *string `json:"difficulty" validate:"required,oneof=new easy medium hard"`
}
