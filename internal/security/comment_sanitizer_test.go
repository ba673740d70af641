package security

import "testing"

func TestCommentSanitizer_RemovesScriptTags(t *testing.T) {
	s := NewCommentSanitizer()

	got := s.Sanitize(`Great movie!<script>alert("xss")</script>`)
	want := "Great movie!"
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestCommentSanitizer_RemovesAllTags(t *testing.T) {
	s := NewCommentSanitizer()

	got := s.Sanitize(`<b>bold</b> and <a href="https://example.com">link</a>`)
	want := "bold and link"
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}

func TestCommentSanitizer_TrimsWhitespace(t *testing.T) {
	s := NewCommentSanitizer()

	got := s.Sanitize("  plain text  ")
	if got != "plain text" {
		t.Errorf("Sanitize() = %q, want %q", got, "plain text")
	}
}

func TestCommentSanitizer_EmptyInput(t *testing.T) {
	s := NewCommentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestCommentSanitizer_Idempotent(t *testing.T) {
	s := NewCommentSanitizer()

	input := `Nice <i>one</i>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)
	if once != twice {
		t.Errorf("Sanitize should be idempotent: first %q, second %q", once, twice)
	}
}
