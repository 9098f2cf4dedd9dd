package linkcheck

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNew(t *testing.T) {
	c := New("./webserver/")
	if c == nil {
		t.Error("New() should return non-nil checker")
	}
}

func TestRequestPath(t *testing.T) {
	tests := []struct {
		name     string
		pagePath string
		ref      string
		want     string
		wantOK   bool
	}{
		{"Absolute path", "/index.html", "/about.html", "/about.html", true},
		{"Relative file", "/docs/index.html", "guide.html", "/docs/guide.html", true},
		{"Parent directory", "/docs/index.html", "../about.html", "/about.html", true},
		{"Directory keeps slash", "/index.html", "docs/", "/docs/", true},
		{"Root", "/docs/index.html", "/", "/", true},
		{"Fragment dropped", "/index.html", "about.html#team", "/about.html", true},
		{"Query kept", "/index.html", "logo.txt?v=2", "/logo.txt?v=2", true},
		{"Space is escaped", "/index.html", "my page.html", "/my%20page.html", true},
		{"Surrounding whitespace", "/index.html", "  about.html\n", "/about.html", true},
		{"External URL", "/index.html", "https://example.com/", "", false},
		{"Protocol relative", "/index.html", "//cdn.example.com/app.js", "", false},
		{"Mail link", "/index.html", "mailto:someone@example.com", "", false},
		{"Fragment only", "/index.html", "#top", "", false},
		{"Query only targets the page", "/index.html", "?page=2", "/index.html?page=2", true},
		{"Query only with fragment", "/docs/index.html", "?page=2#top", "/docs/index.html?page=2", true},
		{"Empty", "/index.html", "", "", false},
		{"Unparseable", "/index.html", "%zz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RequestPath(tt.pagePath, tt.ref)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("RequestPath(%q, %q) = (%q, %v), want (%q, %v)", tt.pagePath, tt.ref, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func setupSite(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"index.html": `<html><head><link rel="stylesheet" href="style.css"></head><body>
<a href="/about.html">About</a>
<a href="docs/">Docs</a>
<a href="missing.html">Missing</a>
<a href="?page=2">Next</a>
<a href="https://example.com/">External</a>
<a href="#top">Top</a>
<a href="mailto:someone@example.com">Mail</a>
<img src="logo.txt?v=2">
</body></html>`,
		"about.html":      `<a href="/">home</a>`,
		"docs/index.html": `<a href="../about.html">About</a><script src="app.js"></script>`,
		"style.css":       "body {}",
		"logo.txt":        "logo",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return root + "/"
}

func TestRun(t *testing.T) {
	root := setupSite(t)

	report, err := New(root).Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Pages != 3 {
		t.Errorf("Pages = %d, want 3", report.Pages)
	}
	if report.Links != 9 {
		t.Errorf("Links = %d, want 9", report.Links)
	}

	want := []Broken{
		{Page: "docs/index.html", Ref: "app.js", RequestPath: "/docs/app.js"},
		{Page: "index.html", Ref: "missing.html", RequestPath: "/missing.html"},
		{Page: "index.html", Ref: "?page=2", RequestPath: "/index.html?page=2"},
		{Page: "index.html", Ref: "logo.txt?v=2", RequestPath: "/logo.txt?v=2"},
	}
	if len(report.Broken) != len(want) {
		t.Fatalf("Broken = %+v, want %d entries", report.Broken, len(want))
	}
	for i, w := range want {
		got := report.Broken[i]
		if got.Page != w.Page || got.Ref != w.Ref || got.RequestPath != w.RequestPath {
			t.Errorf("Broken[%d] = %+v, want %+v", i, got, w)
		}
	}
	if got, want := report.Broken[0].Resolved, root+"/docs/app.js"; got != want {
		t.Errorf("Resolved = %q, want %q", got, want)
	}
	if report.OK() {
		t.Error("OK() = true, want false")
	}
}

func TestRunMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")).Run(); err == nil {
		t.Error("Run() on a missing root should fail")
	}
}

func TestPrint(t *testing.T) {
	color.NoColor = true

	report := &Report{
		Pages: 2,
		Links: 5,
		Broken: []Broken{
			{Page: "index.html", Ref: "missing.html", RequestPath: "/missing.html", Resolved: "./webserver//missing.html"},
		},
	}

	var buf bytes.Buffer
	report.Print(&buf)

	out := buf.String()
	if !strings.Contains(out, "index.html: missing.html -> ./webserver//missing.html") {
		t.Errorf("Print() missing broken line:\n%s", out)
	}
	if !strings.HasSuffix(out, "2 pages, 5 local links, 1 broken\n") {
		t.Errorf("Print() missing summary:\n%s", out)
	}

	buf.Reset()
	(&Report{Pages: 1, Links: 1}).Print(&buf)
	if got, want := buf.String(), "1 pages, 1 local links, 0 broken\n"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
}
