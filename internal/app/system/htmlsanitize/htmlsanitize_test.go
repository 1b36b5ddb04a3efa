package htmlsanitize

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{"empty", "", nil, nil},
		{"plain text", "Vendre sa voiture", []string{"Vendre sa voiture"}, nil},
		{"formatting kept", "<p>Un <strong>bon</strong> prix</p>", []string{"<p>", "<strong>"}, nil},
		{"script removed", "<p>Ok</p><script>alert('x')</script>", []string{"<p>Ok</p>"}, []string{"<script", "alert"}},
		{"event handler removed", `<p onclick="steal()">Ok</p>`, []string{"Ok"}, []string{"onclick"}},
		{"javascript link removed", `<a href="javascript:alert(1)">x</a>`, nil, []string{"javascript:"}},
		{"table kept", "<table><tr><td colspan=\"2\">a</td></tr></table>", []string{"<table>", `colspan="2"`}, nil},
		{"heading id kept", `<h2 id="prix">Prix</h2>`, []string{`id="prix"`}, nil},
		{"bad heading id dropped", `<h2 id="a b<">Prix</h2>`, nil, []string{"id="}},
		{"iframe removed", `<iframe src="https://evil.example"></iframe>`, nil, []string{"iframe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			for _, c := range tt.contains {
				if !strings.Contains(got, c) {
					t.Errorf("Sanitize() = %q, missing %q", got, c)
				}
			}
			for _, e := range tt.excludes {
				if strings.Contains(got, e) {
					t.Errorf("Sanitize() = %q, should not contain %q", got, e)
				}
			}
		})
	}
}

func TestIsPlainText(t *testing.T) {
	if !IsPlainText("Bonjour") || !IsPlainText("a < b") {
		t.Error("plain text misdetected")
	}
	if IsPlainText("<p>Bonjour</p>") {
		t.Error("HTML detected as plain text")
	}
}

func TestPlainTextToHTML(t *testing.T) {
	got := PlainTextToHTML("Bonjour,\n<Jean>")
	if got != "Bonjour,<br>&lt;Jean&gt;" {
		t.Errorf("PlainTextToHTML() = %q", got)
	}
	if PlainTextToHTML("") != "" {
		t.Error("empty input should stay empty")
	}
}

func TestArticleBody(t *testing.T) {
	body, headings := ArticleBody(`<p>Intro</p><h2>Les étapes</h2><p>a</p><h2 class="x">Le <em>prix</em></h2><h2>Les étapes</h2><script>x</script>`)

	want := []Heading{
		{ID: "les-etapes", Title: "Les étapes"},
		{ID: "le-prix", Title: "Le prix"},
		{ID: "les-etapes-2", Title: "Les étapes"},
	}
	if len(headings) != len(want) {
		t.Fatalf("headings = %+v", headings)
	}
	for i := range want {
		if headings[i] != want[i] {
			t.Errorf("headings[%d] = %+v, want %+v", i, headings[i], want[i])
		}
	}

	s := string(body)
	for _, c := range []string{`<h2 id="les-etapes">`, `<h2 id="le-prix">Le <em>prix</em></h2>`, `<h2 id="les-etapes-2">`} {
		if !strings.Contains(s, c) {
			t.Errorf("body missing %q: %s", c, s)
		}
	}
	if strings.Contains(s, "script") {
		t.Error("body not sanitized")
	}
}

func TestArticleBody_HeadingTitleIsText(t *testing.T) {
	_, headings := ArticleBody(`<h2>Prix &amp; <a href="/cote">cote</a><img src="x.png" alt="1>2"></h2>`)
	if len(headings) != 1 {
		t.Fatalf("headings = %+v", headings)
	}
	if got := headings[0].Title; got != "Prix & cote" {
		t.Errorf("Title = %q, want %q", got, "Prix & cote")
	}
	if got := headings[0].ID; got != "prix-cote" {
		t.Errorf("ID = %q, want prix-cote", got)
	}
}
