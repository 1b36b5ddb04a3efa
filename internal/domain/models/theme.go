// internal/domain/models/theme.go
package models

import "strings"

// Theme is reference data backing a thematic landing page such as
// /reprise-voiture-en-panne.
type Theme struct {
	Slug            string      `json:"slug"`
	Title           string      `json:"title"`
	H1              string      `json:"h1"`
	Subtitle        string      `json:"subtitle"`
	MetaDescription string      `json:"metaDescription"`
	Advantages      []Advantage `json:"advantages"`
	FAQ             []FAQEntry  `json:"faq"`
}

// Advantage is one card of a theme's advantages grid.
type Advantage struct {
	Icon  string `json:"icon"` // icon key, see ThemeIconLabel
	Title string `json:"title"`
	Text  string `json:"text"`
}

// FAQEntry is a question/answer pair rendered on landing pages and in
// FAQPage structured data.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CTATitle returns the call-to-action heading shown at the bottom of the page.
func (t Theme) CTATitle() string {
	if strings.Contains(t.H1, "Reprise") || strings.Contains(t.H1, "Rachat") {
		return t.H1 + " - Estimation gratuite"
	}
	return "Profitez de notre service maintenant"
}

// themeIconLabels maps advantage icon keys to the short labels drawn in the
// icon badge.
var themeIconLabels = map[string]string{
	"24h": "24h", "48h": "48h", "2min": "2'", "7j": "7j", "instant": "!",
	"fast": "fast", "simple": "1-2-3", "secure": "lock", "no-ct": "CT",
	"no-service": "wrench", "all": "all", "broken": "X", "truck": "truck",
	"money": "EUR", "crash": "!", "estimate": "calc", "no-wheel": "wheel",
	"engine": "motor", "docs": "doc", "help": "?", "case": "file", "cash": "EUR",
	"no-check": "X", "trust": "check", "full": "100%", "check": "CHQ",
	"choice": "opt", "wire": "wire", "trace": "trace", "all-brands": "AB",
	"all-models": "AM", "fair": "fair", "old": "+10", "value": "EUR", "km": "km",
	"honest": "fair", "no-judge": "ok", "van": "van", "pro": "PRO", "suv": "SUV",
	"demand": "up", "price": "EUR", "sedan": "car", "comfort": "star",
	"city": "city", "popular": "star", "family": "fam", "space": "7+",
	"diesel": "D", "all-ages": "all", "gas": "E", "eco": "eco", "hybrid": "HEV",
	"battery": "bat", "electric": "EV", "future": "up", "gpl": "GPL",
	"niche": "N", "renault": "R", "peugeot": "P", "citroen": "C", "vw": "VW",
	"german": "DE", "toyota": "T", "reliable": "rel", "ford": "F",
	"american": "US", "sporty": "sport", "opel": "O", "psa": "PSA", "audi": "A",
	"premium": "star", "bmw": "BMW", "sport": "sport", "cote": "up",
	"mercedes": "MB", "luxury": "lux", "nissan": "N", "fiat": "F",
	"style": "style", "dacia": "D", "hyundai": "H", "warranty": "5y",
	"modern": "new", "kia": "K", "design": "des", "no-visit": "X",
	"no-nego": "fix", "no-scam": "safe", "legal": "legal", "experience": "exp",
	"loa": "LOA", "option": "opt", "advice": "tip", "credit": "cred",
	"solution": "sol", "support": "help", "patience": "time", "discrete": "priv",
	"flexible": "flex", "worry-free": "zen", "world": "world", "admin": "admin",
	"no-wait": "now", "direct": "dir", "more": "+20%", "no-buy": "free",
	"compare": "vs", "transparent": "clear", "best": "#1", "save": "save",
	"time": "time", "easy": "easy", "guarantee": "ok", "papers": "doc",
}

// ThemeIconLabel returns the badge label for an icon key; unknown keys are
// returned unchanged.
func ThemeIconLabel(icon string) string {
	if label, ok := themeIconLabels[icon]; ok {
		return label
	}
	return icon
}

// IconLabel returns the badge label for the advantage's icon.
func (a Advantage) IconLabel() string {
	return ThemeIconLabel(a.Icon)
}
