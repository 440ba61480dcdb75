package panels

// Placeholder is a screen whose settings are not available yet.
type Placeholder struct {
	id       string
	title    string
	subtitle string
	badge    string
	message  string
}

func (p *Placeholder) ID() string    { return p.id }
func (p *Placeholder) Title() string { return p.title }

func (p *Placeholder) View(props Props) string {
	return comingSoon(props, p.title, p.subtitle, p.badge, p.message)
}

func localAIPanel() *Placeholder {
	return &Placeholder{
		id:       IDLocalAI,
		title:    "ローカルAI",
		subtitle: "Local AI Configuration",
		badge:    "Coming Soon",
		message:  "Local AI settings will be available in a future update.",
	}
}

func customPromptPanel() *Placeholder {
	return &Placeholder{
		id:      IDCustomPrompt,
		title:   "カスタムプロンプト",
		badge:   "準備中",
		message: "カスタムプロンプト設定は今後のアップデートで利用可能になる予定です。",
	}
}

func dictionaryPanel() *Placeholder {
	return &Placeholder{
		id:       IDDictionary,
		title:    "辞書・置換",
		subtitle: "Dictionary & Replacement",
		badge:    "Coming Soon",
		message:  "Dictionary and replacement settings will be available in a future update.",
	}
}
