package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"wortschatz_keep/internal/config"
	"wortschatz_keep/internal/middleware"
	"wortschatz_keep/internal/model"
)

// Translator は生成モデルへの問い合わせを抽象化するインターフェースです。
// 返り値はモデルの生テキストであり、検証は extraction パッケージが行う。
// 呼び出しはタイムアウト付きの同期呼び出しで、失敗はそのまま上流エラーとして返す。
type Translator interface {
	Translate(ctx context.Context, word string) (string, error)
}

// --- GroqTranslator ---

// GroqTranslator は Groq の OpenAI互換 chat completions API を呼び出す実装です。
type GroqTranslator struct {
	cfg    *config.Config
	client *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (t *GroqTranslator) Translate(ctx context.Context, word string) (string, error) {
	logger := middleware.GetLogger(ctx)

	reqBody := chatCompletionRequest{
		Model: t.cfg.Translator.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(word)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("GroqTranslator.Translate: marshal request: %w", err)
	}

	url := t.cfg.Translator.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("GroqTranslator.Translate: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+t.cfg.Translator.APIKey)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		logger.Error("Translator API call failed", "error", err, "word", word)
		return "", fmt.Errorf("GroqTranslator.Translate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("GroqTranslator.Translate: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("Translator API returned non-200 status",
			"status", resp.StatusCode,
			"word", word,
		)
		return "", fmt.Errorf("GroqTranslator.Translate: status %d: %w", resp.StatusCode, model.ErrTranslationFailed)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("GroqTranslator.Translate: decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("GroqTranslator.Translate: empty choices: %w", model.ErrTranslationFailed)
	}

	return completion.Choices[0].Message.Content, nil
}

// buildPrompt は辞書エントリ生成用のプロンプトを組み立てます。
// 出力スキーマは extraction パッケージが検証するフィールドセットと一致させること。
func buildPrompt(word string) string {
	return fmt.Sprintf(`You are a German-English dictionary assistant.

Given the word: "%s"

1. Detect if it's English or German (the input may be misspelled; use the most likely intended word).
2. Provide the translation (English→German or German→English).
3. Provide an example sentence IN GERMAN using the German word, with an English translation.
4. Classify the word type and add grammar details where they apply.

Respond in EXACTLY this JSON format, no extra text:
{
  "english": "the english word",
  "german": "the german word",
  "word_type": "noun|verb|adjective|adverb|preposition|conjunction|pronoun|particle|interjection|numeral|phrase or null",
  "gender_article": "der|die|das (nouns only, else null)",
  "gender_label": "m|f|n (nouns only, else null)",
  "plural": "plural form (nouns only, else null)",
  "verb_forms": "Präteritum, PartizipII (verbs only, else null)",
  "example_sentence": "A German sentence using the word",
  "sentence_translation": "English translation of the example sentence",
  "ipa": "IPA transcription of the German word or null",
  "notes": "a short learner note, or null if nothing noteworthy"
}`, word)
}

// --- LogTranslator ---

// LogTranslator はAPIキーなしの開発環境用の実装です。
// 入力をそのまま反映した固定形式のエントリを返す。
type LogTranslator struct{}

func (t *LogTranslator) Translate(ctx context.Context, word string) (string, error) {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Translating word (LogTranslator) ---", "word", word)
	entry := map[string]interface{}{
		"english":          word,
		"german":           word,
		"word_type":        nil,
		"example_sentence": fmt.Sprintf("Beispielsatz mit %q.", word),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// --- NewTranslator ファクトリ関数 ---

func NewTranslator(cfg *config.Config) Translator {
	logger := slog.Default()
	switch cfg.Translator.Type {
	case "groq":
		if cfg.Translator.APIKey == "" {
			logger.Warn("Groq translator selected but no API key configured, falling back to LogTranslator")
			return &LogTranslator{}
		}
		logger.Info("Initializing Groq translator...", "model", cfg.Translator.Model)
		return &GroqTranslator{
			cfg:    cfg,
			client: &http.Client{Timeout: cfg.Translator.Timeout},
		}
	case "log":
		logger.Info("Initializing Log translator...")
		return &LogTranslator{}
	default:
		logger.Warn("Unknown translator type, defaulting to LogTranslator", "type", cfg.Translator.Type)
		return &LogTranslator{}
	}
}
