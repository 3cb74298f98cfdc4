package overrides

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a line diff between the file renderings of two states, with
// "- " and "+ " marking removed and added lines. Equal states yield "".
func Diff(from, to State) (string, error) {
	if from.Equal(to) {
		return "", nil
	}
	a, err := marshalBody(from)
	if err != nil {
		return "", err
	}
	b, err := marshalBody(to)
	if err != nil {
		return "", err
	}

	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(string(a), string(b))
	diffs := dmp.DiffMain(charsA, charsB, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), nil
}
