package domain

// Pair is one trivia item: question text mapped to its canonical answer text.
type Pair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Outcome classifies what grading a submission produced.
type Outcome string

const (
	// OutcomeCorrect means the normalized submission matched the stored answer.
	OutcomeCorrect Outcome = "correct"
	// OutcomeIncorrect means the submission did not match; the round continues.
	OutcomeIncorrect Outcome = "incorrect"
	// OutcomeNoActiveQuestion means no question is currently posed to the user.
	OutcomeNoActiveQuestion Outcome = "noActiveQuestion"
)

// AnswerResult summarizes the grading of a single submission.
type AnswerResult struct {
	Outcome  Outcome `json:"outcome"`
	Question string  `json:"question,omitempty"` // graded question, empty for noActiveQuestion
}

// GiveUpResult carries the reveal (when the user had an active question) and
// the replacement question that was issued.
type GiveUpResult struct {
	Revealed     string `json:"revealed,omitempty"`
	HasReveal    bool   `json:"hasReveal"`
	NextQuestion string `json:"nextQuestion"`
}
