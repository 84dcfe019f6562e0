package aprx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"pyxidust/internal/domain"
	"pyxidust/internal/ports"
)

// Editor implements ports.DocumentEditor
type Editor struct{}

var _ ports.DocumentEditor = (*Editor)(nil)

// NewEditor creates a document editor
func NewEditor() *Editor {
	return &Editor{}
}

// Rewrite replaces JSON string values of sub.Field that equal sub.Old with
// sub.New in every JSON entry. Substitutions apply in order, so a later one
// sees the result of an earlier one. The file is only written when at least
// one value changed.
func (e *Editor) Rewrite(path string, subs []domain.Substitution) (int, error) {
	a, err := readArtifact(path)
	if err != nil {
		return 0, err
	}

	patterns := make([]*regexp.Regexp, len(subs))
	replacements := make([][]byte, len(subs))
	for i, sub := range subs {
		if sub.Field == "" {
			return 0, fmt.Errorf("substitution %d has no field", i)
		}
		patterns[i] = valuePattern(sub.Field, sub.Old)
		replacements[i] = []byte(jsonString(sub.New))
	}

	total := 0
	for i := range a.entries {
		if !a.entries[i].isJSON() {
			continue
		}
		data := a.entries[i].data
		for j, re := range patterns {
			var n int
			data, n = replaceValues(data, re, replacements[j])
			total += n
		}
		a.entries[i].data = data
	}

	if total == 0 {
		return 0, nil
	}
	if err := a.write(); err != nil {
		return 0, err
	}
	return total, nil
}

// valuePattern matches "field": "old" and captures everything up to the value
func valuePattern(field, old string) *regexp.Regexp {
	return regexp.MustCompile(
		`(` + regexp.QuoteMeta(jsonString(field)) + `\s*:\s*)` + regexp.QuoteMeta(jsonString(old)),
	)
}

func replaceValues(data []byte, re *regexp.Regexp, value []byte) ([]byte, int) {
	n := 0
	out := re.ReplaceAllFunc(data, func(match []byte) []byte {
		n++
		sub := re.FindSubmatch(match)
		return append(append([]byte{}, sub[1]...), value...)
	})
	return out, n
}

// jsonString renders s as a JSON string literal without HTML escaping
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
