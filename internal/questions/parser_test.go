package questions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const sampleSource = `Чемпионат:
Тестовый турнир

Вопрос 1:
Сколько будет
два плюс два?

Ответ:
Четыре

Комментарий:
Школьная арифметика

Вопрос 2:
Столица Франции?

Ответ:
Париж. Основан в III веке до н.э.
`

func TestParsePairsQuestionsWithFollowingAnswers(t *testing.T) {
	pairs, diags, err := Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Question != "Сколько будет два плюс два?" {
		t.Fatalf("expected newlines collapsed in question, got %q", pairs[0].Question)
	}
	if pairs[0].Answer != "Четыре" {
		t.Fatalf("unexpected answer: %q", pairs[0].Answer)
	}
	if pairs[1].Answer != "Париж. Основан в III веке до н.э." {
		t.Fatalf("unexpected answer: %q", pairs[1].Answer)
	}
}

func TestParseDropsDanglingQuestion(t *testing.T) {
	src := "Вопрос 1:\nБез ответа?\n\nВопрос 2:\nС ответом?\n\nОтвет:\nДа\n"
	pairs, diags, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Question != "С ответом?" {
		t.Fatalf("expected only the answered question, got %+v", pairs)
	}
	if len(diags) != 1 || diags[0].Reason != "question without answer" {
		t.Fatalf("expected dangling-question diagnostic, got %+v", diags)
	}
}

func TestParseDropsTrailingQuestionAtEOF(t *testing.T) {
	src := "Вопрос 1:\nГде ответ?\n"
	pairs, diags, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected no pairs, got %+v", pairs)
	}
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", diags)
	}
}

func TestParseDropsOrphanAnswer(t *testing.T) {
	src := "Ответ:\nНичей\n\nВопрос 1:\nВопрос?\n\nОтвет:\nОтвет\n"
	pairs, diags, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %+v", pairs)
	}
	if len(diags) != 1 || diags[0].Reason != "answer without question" {
		t.Fatalf("expected orphan-answer diagnostic, got %+v", diags)
	}
}

func TestParseDropsQuestionMarkerWithoutColon(t *testing.T) {
	src := "Вопрос без двоеточия\n\nОтвет:\nНе должен попасть\n"
	pairs, diags, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 0 {
		t.Fatalf("expected no pairs, got %+v", pairs)
	}
	// Both the malformed question and the now-orphaned answer are reported.
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %+v", diags)
	}
}

func TestParseDuplicateQuestionLastAnswerWins(t *testing.T) {
	src := "Вопрос 1:\nДубль?\n\nОтвет:\nПервый\n\nВопрос 2:\nДубль?\n\nОтвет:\nВторой\n"
	pairs, _, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected duplicate collapsed to one pair, got %+v", pairs)
	}
	if pairs[0].Answer != "Второй" {
		t.Fatalf("expected last answer to win, got %q", pairs[0].Answer)
	}
}

func TestParseFileDecodesKOI8R(t *testing.T) {
	encoded, err := charmap.KOI8R.NewEncoder().String("Вопрос 1:\nДва плюс два?\n\nОтвет:\nЧетыре\n")
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "tour.txt")
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	pairs, diags, err := ParseFile(path, "koi8-r")
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if len(pairs) != 1 || pairs[0].Answer != "Четыре" {
		t.Fatalf("expected decoded pair, got %+v", pairs)
	}
}

func TestParseFileRejectsUnknownEncoding(t *testing.T) {
	if _, _, err := ParseFile("irrelevant", "ebcdic"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
