// Package linkcheck finds links in served HTML pages that the server would
// answer with 404.
package linkcheck

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/f4ah6o/webserver-go/internal/static"
)

// linkAttrs lists the selectors whose attributes reference other resources.
var linkAttrs = []struct {
	selector string
	attr     string
}{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"script[src]", "src"},
	{"img[src]", "src"},
}

// Broken is a local reference that resolves to a file the server cannot serve.
type Broken struct {
	// Page is the slash-separated path of the page, relative to the root.
	Page string
	// Ref is the attribute value as written in the page.
	Ref string
	// RequestPath is the path a browser sends for Ref.
	RequestPath string
	// Resolved is the filesystem path the server tries to read.
	Resolved string
}

// Report summarises a check of a whole root directory.
type Report struct {
	Pages  int
	Links  int
	Broken []Broken
}

// Checker checks pages under a root directory.
type Checker struct {
	root string
}

// New creates a Checker for root.
func New(root string) *Checker {
	return &Checker{root: root}
}

// Run walks the root and checks every .html and .htm file.
func (c *Checker) Run() (*Report, error) {
	report := &Report{}

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isHTML(path) {
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		broken, links, err := c.CheckPage(filepath.ToSlash(rel), f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		report.Pages++
		report.Links += links
		report.Broken = append(report.Broken, broken...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CheckPage parses the page at page (relative to the root) from r and returns
// its broken local references along with the number of local references seen.
func (c *Checker) CheckPage(page string, r io.Reader) ([]Broken, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, err
	}

	pagePath := "/" + strings.TrimPrefix(page, "/")

	var broken []Broken
	links := 0
	for _, la := range linkAttrs {
		doc.Find(la.selector).Each(func(_ int, sel *goquery.Selection) {
			ref, _ := sel.Attr(la.attr)
			requestPath, ok := RequestPath(pagePath, ref)
			if !ok {
				return
			}
			links++

			resolved := static.Resolve(c.root, requestPath)
			if _, err := static.ReadText(resolved); err != nil {
				broken = append(broken, Broken{
					Page:        page,
					Ref:         ref,
					RequestPath: requestPath,
					Resolved:    resolved,
				})
			}
		})
	}
	return broken, links, nil
}

// RequestPath returns the path a browser viewing pagePath sends when
// following ref, and false when ref does not point at this server or only
// moves within the page. The query is kept because the server treats it as
// part of the file name; the fragment is dropped because browsers never send
// it. A query-only ref such as "?page=2" targets pagePath itself.
func RequestPath(pagePath, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" || u.Opaque != "" {
		return "", false
	}
	if u.Path == "" && u.RawQuery == "" {
		return "", false
	}

	target := &url.URL{Path: pagePath}
	if u.Path != "" {
		target = target.ResolveReference(&url.URL{Path: u.Path})
	}

	p := target.EscapedPath()
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p, true
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
