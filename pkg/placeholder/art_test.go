package placeholder

import (
	"encoding/base64"
	"strings"
	"testing"
)

func decode(t *testing.T, uri string) string {
	t.Helper()

	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected data uri prefix: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("invalid base64 payload: %v", err)
	}
	return string(raw)
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate("VK Видео", "video-1_2", "", "")
	second := Generate("VK Видео", "video-1_2", "", "")

	if first != second {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func TestGenerate_ContainsTextAndGradient(t *testing.T) {
	svg := decode(t, Generate("Импровизация", "12 минут", "#123456", "#654321"))

	for _, want := range []string{"Импровизация", "12 минут", "#123456", "#654321", "linearGradient"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestGenerate_EscapesInjection(t *testing.T) {
	svg := decode(t, Generate(`<script>alert("x")</script> & co`, `"quoted" <b>`, "", ""))

	for _, forbidden := range []string{"<script>", `"quoted"`, "<b>", " & "} {
		if strings.Contains(svg, forbidden) {
			t.Errorf("svg contains unescaped %q", forbidden)
		}
	}
	if !strings.Contains(svg, "&lt;script&gt;") {
		t.Error("label text should survive in escaped form")
	}
}

func TestGenerate_LongLabelWraps(t *testing.T) {
	svg := decode(t, Generate("очень длинное название импровизационного формата", "", "", ""))

	if strings.Count(svg, "<text") < 2 {
		t.Error("long label should wrap onto multiple text lines")
	}
}

func TestGenerate_EmptySubtitle(t *testing.T) {
	svg := decode(t, Generate("X", "", "", ""))

	if strings.Count(svg, "<text") != 1 {
		t.Errorf("expected a single text line, got %d", strings.Count(svg, "<text"))
	}
}
