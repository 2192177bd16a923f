package reporter

import (
	"sort"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/runner"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// lineIndex locates byte offsets in a file's original content.
type lineIndex struct {
	content []byte
	lines   []syntax.LineInfo
}

func newLineIndex(content []byte) *lineIndex {
	return &lineIndex{content: content, lines: syntax.BuildLines(content)}
}

// locate returns the 1-based line and byte column of offset.
func (idx *lineIndex) locate(offset int) (int, int) {
	if len(idx.lines) == 0 {
		return 1, 1
	}
	i := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].EndOffset > offset
	})
	if i >= len(idx.lines) {
		i = len(idx.lines) - 1
	}
	return i + 1, offset - idx.lines[i].StartOffset + 1
}

// lineText returns a 1-based line without its terminator.
func (idx *lineIndex) lineText(line int) string {
	if line < 1 || line > len(idx.lines) {
		return ""
	}
	info := idx.lines[line-1]
	return string(idx.content[info.StartOffset:info.NewlineStart])
}

// changeViews converts a file's edits into displayable views.
func changeViews(res *runner.FileResult, withContext bool) []pretty.ChangeView {
	idx := newLineIndex(res.Original)
	views := make([]pretty.ChangeView, 0, len(res.Changes))
	for _, change := range res.Changes {
		line, column := idx.locate(change.Start)
		view := pretty.ChangeView{
			Line:    line,
			Column:  column,
			OldText: string(res.Original[change.Start:change.End]),
			NewText: change.NewText,
		}
		if withContext {
			view.SourceLine = idx.lineText(line)
		}
		views = append(views, view)
	}
	return views
}
