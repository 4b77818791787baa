package export

import (
	"fmt"
	"strings"

	"github.com/johnmatter/gridui/internal/editor"
)

// LayoutText renders the snapshot as a plain-text table, one control
// per line, suitable for the system clipboard.
func LayoutText(snap editor.Snapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grid %dx%d, %d controls\n", snap.Width, snap.Height, len(snap.Controls))
	for _, cv := range snap.Controls {
		pts := make([]string, len(cv.Points))
		for i, p := range cv.Points {
			pts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		fmt.Fprintf(&sb, "%s  %-9s %-7s state=%.2f base=%d peak=%d  %s\n",
			cv.ID, cv.Kind.String(), cv.Variant.String(), cv.State,
			cv.Base, cv.Peak, strings.Join(pts, " "))
	}
	return sb.String()
}
