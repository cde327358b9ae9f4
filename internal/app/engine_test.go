package app_test

import (
	"context"
	"math/rand"
	"testing"

	"quiz-bot/internal/app"
	"quiz-bot/internal/domain"
	"quiz-bot/internal/infra/memory"
	"quiz-bot/internal/questions"
)

func TestNewEngineRejectsEmptyBank(t *testing.T) {
	_, err := app.NewEngine(questions.NewBank(nil), memory.NewSessionStore())
	if err != domain.ErrEmptyBank {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
}

func TestNewQuestionStoresDrawnQuestion(t *testing.T) {
	ctx := context.Background()
	engine, store, bank := newTestEngine(t)

	question, err := engine.NewQuestion(ctx, "tg_1")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	if _, ok := bank.Answer(question); !ok {
		t.Fatalf("returned question %q is not a bank key", question)
	}
	stored, ok, err := store.Get(ctx, "tg_1")
	if err != nil || !ok {
		t.Fatalf("expected stored session, ok=%v err=%v", ok, err)
	}
	if stored != question {
		t.Fatalf("stored %q, returned %q", stored, question)
	}
}

func TestSubmitAnswerCorrect(t *testing.T) {
	ctx := context.Background()
	engine, _, bank := newTestEngine(t)

	question, err := engine.NewQuestion(ctx, "tg_1")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	answer, _ := bank.Answer(question)

	result, err := engine.SubmitAnswer(ctx, "tg_1", answer)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeCorrect {
		t.Fatalf("expected correct, got %s", result.Outcome)
	}
	if result.Question != question {
		t.Fatalf("expected graded question %q, got %q", question, result.Question)
	}
}

func TestSubmitAnswerIncorrectKeepsState(t *testing.T) {
	ctx := context.Background()
	engine, store, bank := newTestEngine(t)

	question, err := engine.NewQuestion(ctx, "tg_1")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}

	result, err := engine.SubmitAnswer(ctx, "tg_1", "заведомо неверный ответ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeIncorrect {
		t.Fatalf("expected incorrect, got %s", result.Outcome)
	}

	stored, ok, _ := store.Get(ctx, "tg_1")
	if !ok || stored != question {
		t.Fatalf("expected session unchanged after incorrect answer, got %q ok=%v", stored, ok)
	}

	// A later correct submission for the same round still succeeds.
	answer, _ := bank.Answer(question)
	result, err = engine.SubmitAnswer(ctx, "tg_1", answer)
	if err != nil {
		t.Fatalf("retry submit: %v", err)
	}
	if result.Outcome != domain.OutcomeCorrect {
		t.Fatalf("expected correct on retry, got %s", result.Outcome)
	}
}

func TestSubmitAnswerWithoutSession(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	result, err := engine.SubmitAnswer(ctx, "tg_never_asked", "что угодно")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeNoActiveQuestion {
		t.Fatalf("expected noActiveQuestion, got %s", result.Outcome)
	}
}

func TestSubmitAnswerWithStaleStoredQuestion(t *testing.T) {
	ctx := context.Background()
	engine, store, _ := newTestEngine(t)

	// Entry written outside the bank's key set, e.g. by an older question file.
	if err := store.Set(ctx, "tg_1", "вопрос из прошлого сезона?"); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	result, err := engine.SubmitAnswer(ctx, "tg_1", "ответ")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeNoActiveQuestion {
		t.Fatalf("expected noActiveQuestion for stale key, got %s", result.Outcome)
	}
}

func TestGiveUpRevealsAndAdvances(t *testing.T) {
	ctx := context.Background()
	engine, store, bank := newTestEngine(t)

	question, err := engine.NewQuestion(ctx, "vk_1")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	answer, _ := bank.Answer(question)

	result, err := engine.GiveUp(ctx, "vk_1")
	if err != nil {
		t.Fatalf("give up: %v", err)
	}
	if !result.HasReveal || result.Revealed != answer {
		t.Fatalf("expected reveal of %q, got %+v", answer, result)
	}
	if result.NextQuestion == "" {
		t.Fatalf("expected a replacement question")
	}
	stored, ok, _ := store.Get(ctx, "vk_1")
	if !ok || stored != result.NextQuestion {
		t.Fatalf("expected store to hold the new question, got %q ok=%v", stored, ok)
	}
	if _, ok := bank.Answer(stored); !ok {
		t.Fatalf("stored question %q is not a valid bank key", stored)
	}
}

func TestGiveUpWithoutSessionSkipsReveal(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	result, err := engine.GiveUp(ctx, "vk_2")
	if err != nil {
		t.Fatalf("give up: %v", err)
	}
	if result.HasReveal {
		t.Fatalf("expected no reveal, got %+v", result)
	}
	if result.NextQuestion == "" {
		t.Fatalf("expected a new question anyway")
	}
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	bank := questions.NewBankWithRand(
		[]domain.Pair{{Question: "2+2?", Answer: "4."}},
		rand.New(rand.NewSource(7)),
	)
	engine, err := app.NewEngine(bank, store)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	question, err := engine.NewQuestion(ctx, "tg_1")
	if err != nil {
		t.Fatalf("new question: %v", err)
	}
	if question != "2+2?" {
		t.Fatalf("expected the only question, got %q", question)
	}
	if stored, ok, _ := store.Get(ctx, "tg_1"); !ok || stored != "2+2?" {
		t.Fatalf("expected stored question, got %q ok=%v", stored, ok)
	}

	result, err := engine.SubmitAnswer(ctx, "tg_1", "четыре")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeIncorrect {
		t.Fatalf("expected incorrect for %q, got %s", "четыре", result.Outcome)
	}

	result, err = engine.SubmitAnswer(ctx, "tg_1", "4")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Outcome != domain.OutcomeCorrect {
		t.Fatalf("expected correct for %q, got %s", "4", result.Outcome)
	}
}

func newTestEngine(t *testing.T) (*app.Engine, *memory.SessionStore, *questions.Bank) {
	t.Helper()
	store := memory.NewSessionStore()
	bank := questions.NewBankWithRand([]domain.Pair{
		{Question: "Сколько будет два плюс два?", Answer: "Четыре"},
		{Question: "Столица Франции?", Answer: "Париж. Основан давно."},
		{Question: "Самая длинная река Африки?", Answer: "Нил (по одной из версий)"},
	}, rand.New(rand.NewSource(1)))
	engine, err := app.NewEngine(bank, store)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine, store, bank
}
