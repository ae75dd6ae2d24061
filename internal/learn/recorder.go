package learn

import (
	"context"
	"fmt"

	"github.com/founderpath/founderpath/internal/profile"
	"github.com/founderpath/founderpath/internal/store"
)

// ProfileRecorder credits completions to the profile and appends them to
// the lesson history. Events may be nil.
type ProfileRecorder struct {
	Profile *profile.Service
	Events  store.EventRepo
}

// RecordCompletion adds the title and XP to the profile, then appends a
// lesson completion event.
func (r ProfileRecorder) RecordCompletion(ctx context.Context, c Completion) error {
	if _, err := r.Profile.AddCompletion(ctx, c.Title, c.XPAwarded); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if r.Events == nil {
		return nil
	}
	err := r.Events.AppendLessonCompletion(ctx, store.LessonCompletionData{
		LessonID:       c.LessonID,
		Title:          c.Title,
		Topic:          c.Topic,
		Difficulty:     string(c.Difficulty),
		CorrectAnswers: c.CorrectAnswers,
		TotalQuestions: c.TotalQuestions,
		XPAwarded:      c.XPAwarded,
	})
	if err != nil {
		return fmt.Errorf("append lesson completion: %w", err)
	}
	return nil
}
