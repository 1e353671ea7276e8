package session

import "time"

// EntryKind distinguishes questions from answers in the conversation log.
type EntryKind string

const (
	EntryQuestion EntryKind = "question"
	EntryAnswer   EntryKind = "answer"
)

// Entry is one line of the interview transcript. Entries are never mutated
// or removed; insertion order pairs each question with the answer that
// follows it.
type Entry struct {
	Kind      EntryKind `json:"kind"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is the append-only conversation transcript. It is the source of truth
// for the interview record handed to the feedback stage.
type Log struct {
	entries   []Entry
	questions int
	answers   int
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) append(kind EntryKind, content string, at time.Time) {
	l.entries = append(l.entries, Entry{Kind: kind, Content: content, Timestamp: at})
	switch kind {
	case EntryQuestion:
		l.questions++
	case EntryAnswer:
		l.answers++
	}
}

// Len returns the number of entries in the log.
func (l *Log) Len() int { return len(l.entries) }

// QuestionCount returns the number of question entries.
func (l *Log) QuestionCount() int { return l.questions }

// AnswerCount returns the number of answer entries.
func (l *Log) AnswerCount() int { return l.answers }

// Entries returns a copy of the transcript in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Context renders the transcript as plain text for the question-generation
// prompt, matching the format the backend expects in the context field.
func (l *Log) Context() string {
	var b []byte
	for _, e := range l.entries {
		switch e.Kind {
		case EntryQuestion:
			b = append(b, "Q: "...)
		case EntryAnswer:
			b = append(b, "A: "...)
		}
		b = append(b, e.Content...)
		b = append(b, '\n')
	}
	return string(b)
}
