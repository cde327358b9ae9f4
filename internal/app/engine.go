package app

import (
	"context"
	"fmt"

	"quiz-bot/internal/domain"
	"quiz-bot/internal/questions"
)

// SessionStore abstracts where the per-user active question is kept
// (in-memory, Redis, etc). Keys are platform-prefixed user ids, so the same
// numeric id on two platforms never collides.
type SessionStore interface {
	// Get returns the stored question for the user; ok is false when no entry exists.
	Get(ctx context.Context, userKey string) (question string, ok bool, err error)
	Set(ctx context.Context, userKey, question string) error
}

// Engine drives the per-user conversation protocol: issue a random question,
// grade free-text submissions against it, reveal the answer on give-up.
// Adapters translate platform events into these calls.
type Engine struct {
	bank     *questions.Bank
	sessions SessionStore
}

// NewEngine binds the engine to its question bank and session store.
// An empty bank is fatal: the service has nothing to ask.
func NewEngine(bank *questions.Bank, sessions SessionStore) (*Engine, error) {
	if bank.Len() == 0 {
		return nil, domain.ErrEmptyBank
	}
	return &Engine{bank: bank, sessions: sessions}, nil
}

// NewQuestion draws a random question, records it as the user's active one,
// and returns its text for display.
func (e *Engine) NewQuestion(ctx context.Context, userKey string) (string, error) {
	pair, err := e.bank.RandomPair()
	if err != nil {
		return "", err
	}
	if err := e.sessions.Set(ctx, userKey, pair.Question); err != nil {
		return "", fmt.Errorf("store session for %s: %w", userKey, err)
	}
	return pair.Question, nil
}

// SubmitAnswer grades raw text against the user's active question. The session
// entry is never touched here: a correct answer ends the round only for the
// caller's control flow, an incorrect one leaves the round open for a retry.
func (e *Engine) SubmitAnswer(ctx context.Context, userKey, raw string) (domain.AnswerResult, error) {
	question, answer, ok, err := e.activeQuestion(ctx, userKey)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	if !ok {
		return domain.AnswerResult{Outcome: domain.OutcomeNoActiveQuestion}, nil
	}
	if questions.Normalize(raw) == questions.Normalize(answer) {
		return domain.AnswerResult{Outcome: domain.OutcomeCorrect, Question: question}, nil
	}
	return domain.AnswerResult{Outcome: domain.OutcomeIncorrect, Question: question}, nil
}

// GiveUp reveals the answer to the user's active question (when a valid one
// exists) and always issues a replacement question, same as NewQuestion.
func (e *Engine) GiveUp(ctx context.Context, userKey string) (domain.GiveUpResult, error) {
	_, answer, ok, err := e.activeQuestion(ctx, userKey)
	if err != nil {
		return domain.GiveUpResult{}, err
	}

	next, err := e.NewQuestion(ctx, userKey)
	if err != nil {
		return domain.GiveUpResult{}, err
	}

	result := domain.GiveUpResult{NextQuestion: next}
	if ok {
		result.Revealed = answer
		result.HasReveal = true
	}
	return result, nil
}

// activeQuestion loads the user's stored question and its canonical answer.
// A stored question that is no longer a bank key counts as no active question.
func (e *Engine) activeQuestion(ctx context.Context, userKey string) (question, answer string, ok bool, err error) {
	question, ok, err = e.sessions.Get(ctx, userKey)
	if err != nil {
		return "", "", false, fmt.Errorf("load session for %s: %w", userKey, err)
	}
	if !ok {
		return "", "", false, nil
	}
	answer, ok = e.bank.Answer(question)
	if !ok {
		return "", "", false, nil
	}
	return question, answer, true, nil
}
