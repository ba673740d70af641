package model

import (
	"strings"
	"testing"
)

func TestNormalizeCategory_KnownLabels(t *testing.T) {
	// UI由来の6表記はすべて3つの正規値に収束する
	tests := []struct {
		label string
		want  string
	}{
		{"Watching", CategoryWatching},
		{"watching", CategoryWatching},
		{"Will Watch", CategoryWillWatch},
		{"will-watch", CategoryWillWatch},
		{"Already Watched", CategoryAlreadyWatched},
		{"already-watched", CategoryAlreadyWatched},
	}

	canonical := map[string]bool{
		CategoryWatching:       true,
		CategoryWillWatch:      true,
		CategoryAlreadyWatched: true,
	}

	for _, tt := range tests {
		got := NormalizeCategory(tt.label)
		if got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.label, got, tt.want)
		}
		if !canonical[got] {
			t.Errorf("NormalizeCategory(%q) = %q is not a canonical value", tt.label, got)
		}
	}
}

func TestNormalizeCategory_UnknownLabelPassesThroughLowercased(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Favorites", "favorites"},
		{"favorites", "favorites"},
		{"  On Hold  ", "on hold"}, // 前後空白はトリムされる
		{"DROPPED", "dropped"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.label); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestMatchesCategory(t *testing.T) {
	tests := []struct {
		stored    string
		canonical string
		want      bool
	}{
		// 正規値そのもの
		{"watching", CategoryWatching, true},
		{"will-watch", CategoryWillWatch, true},
		{"already-watched", CategoryAlreadyWatched, true},
		// 大文字小文字の揺れ
		{"Watching", CategoryWatching, true},
		{"WILL-WATCH", CategoryWillWatch, true},
		// 歴史的なスペース区切り表記
		{"Will Watch", CategoryWillWatch, true},
		{"will watch", CategoryWillWatch, true},
		{"Already Watched", CategoryAlreadyWatched, true},
		// 不一致
		{"watching", CategoryWillWatch, false},
		{"favorites", CategoryWatching, false},
		{"", CategoryWatching, false},
	}

	for _, tt := range tests {
		if got := MatchesCategory(tt.stored, tt.canonical); got != tt.want {
			t.Errorf("MatchesCategory(%q, %q) = %v, want %v", tt.stored, tt.canonical, got, tt.want)
		}
	}
}

func TestTruncateField(t *testing.T) {
	short := "Fight Club"
	if got := TruncateField(short); got != short {
		t.Errorf("TruncateField(%q) = %q, want unchanged", short, got)
	}

	long := strings.Repeat("a", MaxFieldLength+50)
	if got := len([]rune(TruncateField(long))); got != MaxFieldLength {
		t.Errorf("truncated length = %d runes, want %d", got, MaxFieldLength)
	}

	// マルチバイト文字はバイトではなくルーン単位で切り詰める
	multibyte := strings.Repeat("映", MaxFieldLength+1)
	truncated := TruncateField(multibyte)
	if got := len([]rune(truncated)); got != MaxFieldLength {
		t.Errorf("multibyte truncated length = %d runes, want %d", got, MaxFieldLength)
	}
	if !strings.HasSuffix(truncated, "映") {
		t.Error("truncation should not split a multibyte rune")
	}
}
