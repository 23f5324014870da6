package sanitize

import (
	"strings"
	"testing"
)

func TestCleanStripsTags(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hola", "hola"},
		{"<b>hola</b>", "hola"},
		{"pan & agua", "pan &amp; agua"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanNeutralizesScript(t *testing.T) {
	got := Clean(`<script>alert("x")</script>ok`)
	if strings.Contains(got, "<") || strings.Contains(got, "script") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if !strings.HasSuffix(got, "ok") {
		t.Fatalf("plain text lost: %q", got)
	}
}
