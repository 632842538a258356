// internal/extraction/extractor.go
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wortschatz_keep/internal/model"
)

// 抽出・検証の失敗分類。
// ErrMalformedOutput はモデル出力を構造的にパースできなかった場合、
// ErrInvalidField はパースはできたが必須フィールド欠落・列挙違反の場合。
var (
	ErrMalformedOutput = errors.New("malformed model output")
	ErrInvalidField    = errors.New("invalid field in model output")
)

// Entry はモデル出力から抽出した語彙レコードのペイロードです。
// 任意フィールドはNULL許容のポインタ型。
type Entry struct {
	English             string  `json:"english"`
	German              string  `json:"german"`
	WordType            *string `json:"word_type"`
	GenderArticle       *string `json:"gender_article"`
	GenderLabel         *string `json:"gender_label"`
	Plural              *string `json:"plural"`
	VerbForms           *string `json:"verb_forms"`
	ExampleSentence     string  `json:"example_sentence"`
	SentenceTranslation *string `json:"sentence_translation"`
	IPA                 *string `json:"ipa"`
	Notes               *string `json:"notes"`
}

// Parse は生成モデルの生テキストを検証済みのペイロードに変換します。
// 純粋関数であり、I/Oは一切行わない。大文字小文字などの表記整形は
// 上流のプロンプトを信頼し、ここでは形状と列挙メンバーシップのみ検証する。
func Parse(raw string) (*Entry, error) {
	text := stripFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrMalformedOutput)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	// 空文字の任意フィールドはNULL扱いに正規化してから検証する
	entry.WordType = emptyToNil(entry.WordType)
	entry.GenderArticle = emptyToNil(entry.GenderArticle)
	entry.GenderLabel = emptyToNil(entry.GenderLabel)
	entry.Plural = emptyToNil(entry.Plural)
	entry.VerbForms = emptyToNil(entry.VerbForms)
	entry.SentenceTranslation = emptyToNil(entry.SentenceTranslation)
	entry.IPA = emptyToNil(entry.IPA)
	entry.Notes = emptyToNil(entry.Notes)

	// 必須フィールドの検証
	if strings.TrimSpace(entry.English) == "" {
		return nil, fmt.Errorf("%w: english is required", ErrInvalidField)
	}
	if strings.TrimSpace(entry.German) == "" {
		return nil, fmt.Errorf("%w: german is required", ErrInvalidField)
	}
	if strings.TrimSpace(entry.ExampleSentence) == "" {
		return nil, fmt.Errorf("%w: example_sentence is required", ErrInvalidField)
	}

	// word_type は列挙内またはNULLのみ許可
	if entry.WordType != nil && !model.WordType(*entry.WordType).IsValid() {
		return nil, fmt.Errorf("%w: unknown word_type %q", ErrInvalidField, *entry.WordType)
	}

	// 名詞専用・動詞専用フィールドの排他制約。
	// 違反はレコード全体を棄却せず、該当フィールドをNULLに強制する (冪等な正規化)。
	isNoun := entry.WordType != nil && model.WordType(*entry.WordType) == model.WordTypeNoun
	isVerb := entry.WordType != nil && model.WordType(*entry.WordType) == model.WordTypeVerb
	if !isNoun {
		entry.GenderArticle = nil
		entry.GenderLabel = nil
		entry.Plural = nil
	}
	if !isVerb {
		entry.VerbForms = nil
	}

	return &entry, nil
}

// stripFence はフェンス付きコードブロックや前後の散文からJSON部分を取り出します。
// フェンスが閉じていなくても最初の区切り以降を採用する。
func stripFence(raw string) string {
	if !strings.Contains(raw, "```") {
		return strings.TrimSpace(raw)
	}
	parts := strings.SplitN(raw, "```", 3)
	text := parts[1]
	if strings.HasPrefix(text, "json") {
		text = text[len("json"):]
	}
	return strings.TrimSpace(text)
}

func emptyToNil(s *string) *string {
	if s != nil && strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
