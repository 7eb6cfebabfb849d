package metrics

import (
	"strings"

	"github.com/codescout/codescout/pkg/types"
)

// ExtractSignatures pulls method and function signatures out of a document
// with the same declaration patterns used for scoring. Documents in
// unsupported languages yield nil.
func (a *Analyzer) ExtractSignatures(doc types.Document) []types.MethodSignature {
	lang, ok := languages[doc.Ext]
	if !ok {
		return nil
	}

	var sigs []types.MethodSignature
	for _, loc := range lang.decl.FindAllStringSubmatchIndex(doc.Content, -1) {
		// The declaration regex may stop mid-signature; take the full line.
		end := loc[0] + strings.IndexByte(doc.Content[loc[0]:], '\n')
		if end < loc[0] {
			end = len(doc.Content)
		}
		if end < loc[1] {
			end = loc[1]
		}
		raw := doc.Content[loc[0]:end]
		sig := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "{"))
		sigs = append(sigs, types.MethodSignature{
			Name:      doc.Content[loc[2]:loc[3]],
			Signature: sig,
			Kind:      lang.sigKind,
		})
	}
	return sigs
}
