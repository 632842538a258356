// internal/model/stats.go
package model

// WordTypeOther は word_type 未設定のエントリを集計するときのバケット名
const WordTypeOther = "other"

// TypeCount は品詞別ヒストグラムの1要素 (件数の降順で並ぶ)
type TypeCount struct {
	WordType string `json:"word_type"`
	Count    int    `json:"count"`
}

// DailyCount は日別件数の1要素。登録のあった日のみ含まれる (ゼロ埋めしない)。
type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Milestone は登録総数のしきい値と表示用ラベルの組
type Milestone struct {
	Target  int    `json:"target"`
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Reached bool   `json:"reached"`
}

// MilestoneTargets はマイルストーンの固定定義 (導出データではなく静的設定)
var MilestoneTargets = []struct {
	Target int
	Label  string
	Icon   string
}{
	{1, "Erstes Wort", "seedling"},
	{10, "Zehn Wörter", "sprout"},
	{25, "Wortsammler", "leaf"},
	{50, "Halbes Hundert", "herb"},
	{100, "Hundert Wörter", "tree"},
	{250, "Fleißiger Lerner", "star"},
	{500, "Wortschatz-Profi", "trophy"},
	{1000, "Tausend Wörter", "crown"},
}

// StatsReport は1オーナー分の学習統計レポート
type StatsReport struct {
	Total        int                `json:"total"`
	ByType       []TypeCount        `json:"by_type"`
	ByDifficulty map[Difficulty]int `json:"by_difficulty"`
	Daily        []DailyCount       `json:"daily"`
	Streak       int                `json:"streak"`
	Milestones   []Milestone        `json:"milestones"`
}
