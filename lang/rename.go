package lang

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// RenameIdentifiers appends suffix to every whole-word occurrence of the
// given names in source. Longer names are matched first, so renaming both
// "E" and "Ex" never produces "Ex" + suffix + "x".
func RenameIdentifiers(source string, names []string, suffix string) string {
	if suffix == "" || len(names) == 0 {
		return source
	}

	quoted := make([]string, 0, len(names))

	for _, name := range names {
		if name != "" {
			quoted = append(quoted, regexp.QuoteMeta(name))
		}
	}

	if len(quoted) == 0 {
		return source
	}

	slices.SortFunc(quoted, func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	})

	rex := regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)

	return rex.ReplaceAllString(source, "${1}"+suffix)
}
