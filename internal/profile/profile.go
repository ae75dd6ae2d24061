// Package profile owns the single local UserProfile and mirrors every
// mutation to the persisted profile store.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/store"
)

// DefaultName is the display name of a fresh profile.
const DefaultName = "Founder"

// ErrNegativeXP is returned when a completion would lower the XP total.
var ErrNegativeXP = errors.New("xp award must not be negative")

// UserProfile is the persisted user record.
type UserProfile struct {
	Name             string   `json:"name"`
	XP               int      `json:"xp"`
	CompletedLessons []string `json:"completedLessons"`
	ProfilePicture   string   `json:"profilePicture,omitempty"`
}

// Default returns the first-launch profile.
func Default() UserProfile {
	return UserProfile{Name: DefaultName, CompletedLessons: []string{}}
}

func (p UserProfile) clone() UserProfile {
	p.CompletedLessons = slices.Clone(p.CompletedLessons)
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	return p
}

// Updates is a partial profile merge. Nil fields are left untouched.
type Updates struct {
	Name           *string
	ProfilePicture *string
}

// Service guards the in-memory profile. Every mutation is a locked
// read-merge-write followed by a full-record save.
type Service struct {
	mu      sync.Mutex
	repo    store.ProfileRepo
	key     string
	current UserProfile
	log     *logger.Logger
}

// NewService creates a Service holding the default profile. Call Load to
// pick up a saved record.
func NewService(repo store.ProfileRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		key:     store.ProfileKey,
		current: Default(),
		log:     log.With("component", "profile"),
	}
}

// Load reads the saved record, overwriting the defaults. On first run
// the defaults are saved so the record exists from then on.
func (s *Service) Load(ctx context.Context) (UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.Load(ctx, s.key)
	if err != nil {
		return s.current.clone(), fmt.Errorf("load profile: %w", err)
	}
	if doc == nil {
		s.current = Default()
		s.log.Info("created default profile")
		return s.current.clone(), s.saveLocked(ctx)
	}

	p := Default()
	if err := json.Unmarshal(doc, &p); err != nil {
		return s.current.clone(), fmt.Errorf("decode profile: %w", err)
	}
	s.current = p.clone()
	s.log.Debug("profile loaded", "name", p.Name, "xp", p.XP, "lessons", len(p.CompletedLessons))
	return s.current.clone(), nil
}

// Current returns a copy of the in-memory profile.
func (s *Service) Current() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.clone()
}

// Update merges u into the profile and saves it.
func (s *Service) Update(ctx context.Context, u Updates) (UserProfile, error) {
	return s.mutate(ctx, func(p *UserProfile) error {
		if u.Name != nil {
			p.Name = *u.Name
		}
		if u.ProfilePicture != nil {
			p.ProfilePicture = *u.ProfilePicture
		}
		return nil
	})
}

// AddCompletion adds xp and appends title to the completed lessons.
func (s *Service) AddCompletion(ctx context.Context, title string, xp int) (UserProfile, error) {
	if xp < 0 {
		return s.Current(), ErrNegativeXP
	}
	return s.mutate(ctx, func(p *UserProfile) error {
		p.XP += xp
		p.CompletedLessons = append(p.CompletedLessons, title)
		return nil
	})
}

// SetPicture stores an encoded image URL.
func (s *Service) SetPicture(ctx context.Context, dataURL string) error {
	_, err := s.Update(ctx, Updates{ProfilePicture: &dataURL})
	return err
}

// Reset restores the default name, picture and lesson list. Earned XP is
// kept.
func (s *Service) Reset(ctx context.Context) error {
	_, err := s.mutate(ctx, func(p *UserProfile) error {
		xp := p.XP
		*p = Default()
		p.XP = xp
		return nil
	})
	return err
}

// Recent returns up to n completed lesson titles, most recent first.
func (s *Service) Recent(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := s.current.CompletedLessons
	if n > len(done) {
		n = len(done)
	}
	out := make([]string, 0, n)
	for i := len(done) - 1; i >= len(done)-n; i-- {
		out = append(out, done[i])
	}
	return out
}

// mutate applies fn to the profile and saves the result. The in-memory
// profile keeps the change even when the save fails.
func (s *Service) mutate(ctx context.Context, fn func(*UserProfile) error) (UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.clone()
	if err := fn(&next); err != nil {
		return s.current.clone(), err
	}
	s.current = next
	return s.current.clone(), s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) error {
	doc, err := json.Marshal(s.current)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.repo.Save(ctx, s.key, doc); err != nil {
		s.log.Error("profile save failed", "err", err)
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
