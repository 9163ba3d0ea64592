package entities

// Status is the engine state of a quiz.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusReviewing  Status = "reviewing" // read-only view of a completed session
)

// WrongAnswer is a missed question kept for the end-of-session review.
type WrongAnswer struct {
	Position int      // position in the session
	Question Question // the question that was missed
	Given    string   // what the user answered
}

// QuizState pairs a persisted session with UI-scoped data
// that is never written to the session store.
type QuizState struct {
	Session        *Session
	SelectedAnswer string        // current, not yet submitted selection
	WrongAnswers   []WrongAnswer // missed questions in this run
	ViewIndex      *int          // position being inspected, nil when not viewing
	PreviousIndex  *int          // in-progress position to return to after viewing
}

// NewQuizState wraps a session into a fresh transient state.
func NewQuizState(s *Session) *QuizState {
	return &QuizState{Session: s}
}

// IsViewing reports whether an ad hoc inspection is active.
func (st *QuizState) IsViewing() bool {
	return st.ViewIndex != nil
}

// ScoredResult is the outcome of an answer submission.
type ScoredResult struct {
	Accepted      bool   // false when the submission was ignored
	Correct       bool   // whether the answer was correct
	Given         string // submitted answer
	CorrectAnswer string // expected answer
	NearMiss      bool   // wrong free-text answer close to the expected one
}

// Summary is the end-of-session report.
type Summary struct {
	Total      int           // questions in the session
	Correct    int           // correctly answered
	Wrong      int           // total minus correct
	Percentage float64       // correct / total * 100
	Missed     []WrongAnswer // missed questions, in session order
}
