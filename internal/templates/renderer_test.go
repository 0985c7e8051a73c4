package templates

import (
	"strings"
	"testing"
)

func TestRendererRender(t *testing.T) {
	r := Renderer{}
	out, err := r.Render("greet", "Hello {{.Name}}", map[string]string{"Name": "Patient"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Patient" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := r.Render("bad", "Hello {{.Missing}}", map[string]string{"Name": "x"}); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestRendererEscapesHTML(t *testing.T) {
	r := Renderer{}
	out, err := r.Render("esc", "<p>{{.Summary}}</p>", map[string]string{"Summary": "<script>x</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected escaped output, got %q", out)
	}
}

func TestRendererEmptyTemplate(t *testing.T) {
	r := Renderer{}
	if _, err := r.Render("empty", "", nil); err == nil {
		t.Fatal("expected error for empty template text")
	}
}
