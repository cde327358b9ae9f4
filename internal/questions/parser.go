package questions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"quiz-bot/internal/domain"
)

// Block markers of the tournament file format the bank is loaded from.
const (
	questionMarker = "Вопрос"
	answerMarker   = "Ответ:"
)

// Diagnostic describes a block the parser dropped instead of failing on.
type Diagnostic struct {
	Block  string
	Reason string
}

// Parse reads a question source: blocks separated by a blank line, where a
// block starting with the question marker opens a pending question (text after
// the marker's first colon) and the next block starting with the answer marker
// closes it. Blocks matching neither marker (tournament headers, comments,
// credits) are skipped silently; malformed question/answer blocks are dropped
// and reported as diagnostics so a partial bank still loads.
func Parse(r io.Reader) ([]domain.Pair, []Diagnostic, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read question source: %w", err)
	}

	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")

	var (
		pairs      []domain.Pair
		index      = make(map[string]int)
		diags      []Diagnostic
		pending    string
		hasPending bool
	)

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		switch {
		case strings.HasPrefix(block, questionMarker):
			if hasPending {
				diags = append(diags, Diagnostic{Block: pending, Reason: "question without answer"})
			}
			hasPending = false
			_, text, found := strings.Cut(block, ":")
			if !found {
				diags = append(diags, Diagnostic{Block: block, Reason: "question marker without colon"})
				continue
			}
			pending = collapse(strings.TrimSpace(text))
			hasPending = true
		case strings.HasPrefix(block, answerMarker):
			if !hasPending {
				diags = append(diags, Diagnostic{Block: block, Reason: "answer without question"})
				continue
			}
			answer := collapse(strings.TrimSpace(strings.ReplaceAll(block, answerMarker, "")))
			if i, ok := index[pending]; ok {
				// Duplicate question text: the later answer wins.
				pairs[i].Answer = answer
			} else {
				index[pending] = len(pairs)
				pairs = append(pairs, domain.Pair{Question: pending, Answer: answer})
			}
			hasPending = false
		}
	}
	if hasPending {
		diags = append(diags, Diagnostic{Block: pending, Reason: "question without answer"})
	}

	return pairs, diags, nil
}

// ParseFile parses a question source file, decoding it from the named legacy
// encoding first. Empty name or "utf-8" reads the file as-is.
func ParseFile(path, encodingName string) ([]domain.Pair, []Diagnostic, error) {
	enc, err := encodingByName(encodingName)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open question source: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if enc != nil {
		r = transform.NewReader(f, enc.NewDecoder())
	}
	return Parse(r)
}

func encodingByName(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "koi8-r", "koi8r":
		return charmap.KOI8R, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	default:
		return nil, fmt.Errorf("unsupported question source encoding %q", name)
	}
}

func collapse(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
