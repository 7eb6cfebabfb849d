package chunker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codescout/codescout/pkg/types"
)

// MaxFilesPerExtension caps the file names listed per extension in the
// overview artifact so the single overview call stays bounded.
const MaxFilesPerExtension = 50

// BuildOverview renders the high-level project artifact used by the one-time
// overview call: a per-extension file listing plus the content of any
// document recognized as a readme. This artifact is exempt from the chunk
// budget; its size is bounded by the capped listings instead.
func BuildOverview(documents []types.Document) string {
	byExt := make(map[string][]string)
	var readme string
	for _, d := range documents {
		ext := d.ExtKey()
		byExt[ext] = append(byExt[ext], d.Path)
		if readme == "" && d.IsReadme() {
			readme = d.Content
		}
	}

	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	var b strings.Builder
	b.WriteString("=== PROJECT STRUCTURE ===\n")
	for _, ext := range exts {
		paths := byExt[ext]
		sort.Strings(paths)
		b.WriteString(fmt.Sprintf("\n%s files (%d):\n", ext, len(paths)))
		shown := paths
		if len(shown) > MaxFilesPerExtension {
			shown = shown[:MaxFilesPerExtension]
		}
		for _, p := range shown {
			b.WriteString(fmt.Sprintf("  - %s\n", p))
		}
		if len(paths) > MaxFilesPerExtension {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(paths)-MaxFilesPerExtension))
		}
	}

	if readme != "" {
		b.WriteString("\n\n=== README CONTENT ===\n\n")
		b.WriteString(readme)
	}

	return b.String()
}
