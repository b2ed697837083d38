package session

import (
	"context"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bashup/dotenv/internal/logger"
)

// logDiff shows what a write is about to change, at debug level only.
// The diff is line-oriented so untouched content collapses out of view.
func logDiff(ctx context.Context, before, after string) {
	if !logger.Enabled(ctx, logger.LevelDebug) {
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			logger.Debug(ctx, "+ {{|green|}}%s{{|-|}}", trimNewline(d.Text))
		case diffmatchpatch.DiffDelete:
			logger.Debug(ctx, "- {{|red|}}%s{{|-|}}", trimNewline(d.Text))
		}
	}
}

func trimNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}
