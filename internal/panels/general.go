package panels

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/typozero/internal/shortcut"
)

// ProofreadingLevel is the General panel's level selector. It is local to
// the panel and is not saved.
type ProofreadingLevel int

const (
	LevelLight ProofreadingLevel = iota
	LevelStandard
	LevelStrict
)

var levelLabels = []string{"軽量", "標準", "厳格"}

func (l ProofreadingLevel) String() string {
	switch l {
	case LevelLight:
		return "light"
	case LevelStrict:
		return "strict"
	default:
		return "standard"
	}
}

// Language is an entry of the language preference list.
type Language struct {
	Code  string
	Label string
}

var languages = []Language{
	{Code: "japanese", Label: "日本語 (Japanese)"},
	{Code: "english", Label: "English"},
	{Code: "chinese", Label: "中文 (Chinese)"},
	{Code: "korean", Label: "한국어 (Korean)"},
}

// General is the first settings screen: proofreading level, language,
// auto-copy and the embedded shortcut recorder.
type General struct {
	rec      *shortcut.Recorder
	level    ProofreadingLevel
	language int
	autoCopy bool
}

func NewGeneral(rec *shortcut.Recorder) *General {
	return &General{rec: rec, level: LevelStandard, autoCopy: true}
}

func (g *General) ID() string                    { return IDGeneral }
func (g *General) Title() string                 { return "一般" }
func (g *General) Recorder() *shortcut.Recorder { return g.rec }

func (g *General) Level() ProofreadingLevel { return g.level }
func (g *General) Language() Language       { return languages[g.language] }
func (g *General) AutoCopy() bool           { return g.autoCopy }

// HandleKey: l cycles the level, g cycles the language, a toggles auto-copy.
func (g *General) HandleKey(key string) bool {
	switch key {
	case "l":
		g.level = (g.level + 1) % ProofreadingLevel(len(levelLabels))
	case "L":
		g.level = (g.level + ProofreadingLevel(len(levelLabels)) - 1) % ProofreadingLevel(len(levelLabels))
	case "g":
		g.language = (g.language + 1) % len(languages)
	case "G":
		g.language = (g.language + len(languages) - 1) % len(languages)
	case "a":
		g.autoCopy = !g.autoCopy
	default:
		return false
	}
	return true
}

func (g *General) View(p Props) string {
	s := p.Styles
	st := g.rec.State()

	langRows := make([]string, 0, len(languages))
	for i, l := range languages {
		marker := "  "
		style := s.Muted
		if i == g.language {
			marker = "▸ "
			style = s.Body
		}
		langRows = append(langRows, style.Render(marker+l.Label))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header(p, "一般", ""),
		card(p, "校正レベル", "l / L", segmented(s, levelLabels, int(g.level))),
		card(p, "言語設定", "g / G", lipgloss.JoinVertical(lipgloss.Left, langRows...)),
		card(p, "自動コピー", "校正されたテキストを自動的にクリップボードにコピーします (a)", toggle(s, g.autoCopy)),
		s.Section.Render("ショートカット"),
		currentShortcutCard(p, st, ""),
		recordCard(p, st, false),
		suggestionsCard(p, ""),
		note(s.Warning, p, "⚠", conflictWarningJA),
		note(s.Info, p, "ℹ", "TypoZeroは選択されたレベルに基づいて文章を校正します。Lightは軽微な誤字のみ、Standardは一般的な誤り、Strictは厳格な文法チェックを行います。"),
	)
}
