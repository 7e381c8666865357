package page

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testData() *Data {
	return &Data{
		Version: "4.5.0",
		Downloads: []Download{
			{
				Title:    "Windows installer",
				Filename: "electrum-4.5.0-setup.exe",
				URL:      "https://download.example.org/4.5.0/electrum-4.5.0-setup.exe",
				Signatures: []Signature{
					{Label: "Thomas Voegtlin", URL: "https://download.example.org/4.5.0/electrum-4.5.0-setup.exe.ThomasV.asc"},
					{Label: "SomberNight", URL: "https://download.example.org/4.5.0/electrum-4.5.0-setup.exe.SomberNight.asc"},
				},
			},
		},
		Signers: []string{"Thomas Voegtlin", "SomberNight"},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, testData()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<h1>Electrum 4.5.0</h1>",
		`href="https://download.example.org/4.5.0/electrum-4.5.0-setup.exe"`,
		"electrum-4.5.0-setup.exe.ThomasV.asc",
		"Signed by: Thomas Voegtlin, SomberNight",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRender_EscapesLabels(t *testing.T) {
	data := testData()
	data.Signers = []string{"<script>"}

	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, data); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Error("signer label not escaped")
	}
}

func TestRenderFile_TemplateErrorWritesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	tmplPath := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(tmplPath, []byte("{{.Missing.Field}}"), 0600); err != nil {
		t.Fatal(err)
	}

	renderer, err := NewRendererFromFile(tmplPath)
	if err != nil {
		t.Fatalf("NewRendererFromFile() error = %v", err)
	}

	out := filepath.Join(tmpDir, "index.html")
	if err := renderer.RenderFile(out, testData()); err == nil {
		t.Fatal("RenderFile() error = nil, want template error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("page written despite template error")
	}
}

func TestNewRendererFromFile_Missing(t *testing.T) {
	if _, err := NewRendererFromFile("/nonexistent/page.html"); err == nil {
		t.Error("NewRendererFromFile() with missing file should return error")
	}
}
