// Package content is the client for the generative-text provider: it
// turns FounderPath requests into llm.Requests and normalizes the
// results into lessons, chat streams and plain-text documents.
package content

// Difficulty is a lesson or topic level.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Lesson is a generated micro-lesson: reading sections followed by a quiz.
type Lesson struct {
	ID         string         `json:"id"`
	Topic      string         `json:"topic"`
	Title      string         `json:"title"`
	Duration   string         `json:"duration"`
	Difficulty Difficulty     `json:"difficulty"`
	Sections   []Section      `json:"sections"`
	Quiz       []QuizQuestion `json:"quiz"`
}

// Section is one reading page of a lesson.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// QuizQuestion is a multiple-choice question with one correct option.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}
