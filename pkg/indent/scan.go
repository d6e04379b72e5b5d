package indent

import "github.com/yaklabco/msclfmt/pkg/buffer"

// PreviousCodeLine walks backwards from the line before line and returns the
// nearest line holding real code. Blank lines, labels, and lines entirely
// inside comments or strings are skipped. Returns (-1, false) when the start
// of the buffer is reached first.
func PreviousCodeLine(buf *buffer.Buffer, cls Classifier, line int) (int, bool) {
	if cls == nil {
		cls = NoSpans{}
	}

	for idx := min(line, buf.LineCount()) - 1; idx >= 0; idx-- {
		if IsCodeLine(buf, cls, idx) {
			return idx, true
		}
	}
	return -1, false
}
