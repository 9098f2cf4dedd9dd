package linkcheck

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	brokenColor = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
	pathColor   = color.New(color.Faint)
)

// OK reports whether no broken links were found.
func (r *Report) OK() bool {
	return len(r.Broken) == 0
}

// Print writes one line per broken link followed by a summary line.
func (r *Report) Print(w io.Writer) {
	for _, b := range r.Broken {
		brokenColor.Fprint(w, "✗ ")
		fmt.Fprintf(w, "%s: %s ", b.Page, b.Ref)
		pathColor.Fprintf(w, "-> %s\n", b.Resolved)
	}

	summary := fmt.Sprintf("%d pages, %d local links, %d broken\n", r.Pages, r.Links, len(r.Broken))
	if r.OK() {
		okColor.Fprint(w, summary)
	} else {
		brokenColor.Fprint(w, summary)
	}
}
