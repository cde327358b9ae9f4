package questions

import (
	"math/rand"
	"sync"
	"time"

	"quiz-bot/internal/domain"
)

// Bank is the immutable question→answer mapping loaded at startup.
type Bank struct {
	answers map[string]string
	order   []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBank builds a bank from parsed pairs. A duplicate question keeps its
// original position and takes the later answer.
func NewBank(pairs []domain.Pair) *Bank {
	return NewBankWithRand(pairs, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewBankWithRand allows deterministic question selection in tests.
func NewBankWithRand(pairs []domain.Pair, rnd *rand.Rand) *Bank {
	b := &Bank{
		answers: make(map[string]string, len(pairs)),
		rnd:     rnd,
	}
	for _, p := range pairs {
		if _, ok := b.answers[p.Question]; !ok {
			b.order = append(b.order, p.Question)
		}
		b.answers[p.Question] = p.Answer
	}
	return b
}

// Len reports the number of distinct questions in the bank.
func (b *Bank) Len() int {
	return len(b.order)
}

// Answer returns the canonical answer for a question.
func (b *Bank) Answer(question string) (string, bool) {
	answer, ok := b.answers[question]
	return answer, ok
}

// RandomPair draws a uniformly random pair from the bank.
func (b *Bank) RandomPair() (domain.Pair, error) {
	if len(b.order) == 0 {
		return domain.Pair{}, domain.ErrEmptyBank
	}
	b.mu.Lock()
	i := b.rnd.Intn(len(b.order))
	b.mu.Unlock()
	question := b.order[i]
	return domain.Pair{Question: question, Answer: b.answers[question]}, nil
}
