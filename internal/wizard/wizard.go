// Package wizard implements the mood check-in flow: a fixed ordered list of
// three questions answered one at a time, submitted as a single mood entry.
package wizard

import (
	"context"
	"errors"
	"strconv"
)

// Recorder persists a finished check-in. Implemented by the HTTP API client.
type Recorder interface {
	CreateMoodEntry(ctx context.Context, entry Entry) (string, error)
}

type Entry struct {
	Mood    int
	Stress  int
	Anxiety string
	Notes   string
}

type Question struct {
	Key     string
	Prompt  string
	Options []string
}

// Questions returns the fixed check-in sequence.
func Questions() []Question {
	return []Question{
		{Key: "mood", Prompt: "How is your mood right now?", Options: []string{"1", "2", "3", "4", "5"}},
		{Key: "stress", Prompt: "How stressed do you feel?", Options: []string{"1", "2", "3", "4", "5"}},
		{Key: "anxiety", Prompt: "How would you describe your anxiety?", Options: []string{"calm", "fine", "tense", "anxious", "overwhelmed"}},
	}
}

var ErrAnswerRequired = errors.New("wizard: current question has no answer")

type Wizard struct {
	rec       Recorder
	questions []Question
	idx       int
	answers   []string
	notes     string
	completed bool
}

func New(rec Recorder) *Wizard {
	qs := Questions()
	return &Wizard{rec: rec, questions: qs, answers: make([]string, len(qs))}
}

func (w *Wizard) Question() Question { return w.questions[w.idx] }
func (w *Wizard) Index() int         { return w.idx }
func (w *Wizard) Total() int         { return len(w.questions) }
func (w *Wizard) Answer() string     { return w.answers[w.idx] }
func (w *Wizard) Completed() bool    { return w.completed }

// SelectAnswer stores the answer for the current question without advancing.
func (w *Wizard) SelectAnswer(value string) {
	w.answers[w.idx] = value
}

func (w *Wizard) SetNotes(notes string) {
	w.notes = notes
}

func (w *Wizard) IsAnswerSelected() bool {
	return w.answers[w.idx] != ""
}

// Next advances to the following question, or submits on the last one.
// Blocked until the current question has an answer.
func (w *Wizard) Next(ctx context.Context) error {
	if !w.IsAnswerSelected() {
		return ErrAnswerRequired
	}
	return w.advance(ctx)
}

// Skip moves on without requiring an answer.
func (w *Wizard) Skip(ctx context.Context) error {
	return w.advance(ctx)
}

// Previous steps back one question. The answer already given for the
// question being left is kept.
func (w *Wizard) Previous() bool {
	if w.idx == 0 {
		return false
	}
	w.idx--
	return true
}

// Progress reports the display fraction for the current question.
func (w *Wizard) Progress() float64 {
	return float64(w.idx+1) / float64(len(w.questions))
}

// StartOver clears the completed flag so a new check-in can begin.
func (w *Wizard) StartOver() {
	w.completed = false
	w.idx = 0
	for i := range w.answers {
		w.answers[i] = ""
	}
	w.notes = ""
}

func (w *Wizard) advance(ctx context.Context) error {
	if w.idx < len(w.questions)-1 {
		w.idx++
		return nil
	}
	return w.submit(ctx)
}

// submit posts exactly one mood entry with the collected answers. The flow
// completes locally even if the recorder call fails; the error is surfaced
// once and no resubmission is offered.
func (w *Wizard) submit(ctx context.Context) error {
	entry := Entry{
		Mood:    atoiOrZero(w.answers[0]),
		Stress:  atoiOrZero(w.answers[1]),
		Anxiety: w.answers[2],
		Notes:   w.notes,
	}
	_, err := w.rec.CreateMoodEntry(ctx, entry)

	w.completed = true
	w.idx = 0
	for i := range w.answers {
		w.answers[i] = ""
	}
	w.notes = ""
	return err
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
