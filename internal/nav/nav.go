// Package nav tracks the active view, the launch splash and sign-in.
package nav

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/founderpath/founderpath/internal/logger"
	"github.com/founderpath/founderpath/internal/profile"
)

const (
	// SplashDuration is how long the launch splash is shown.
	SplashDuration = 2500 * time.Millisecond
	// AuthDelay simulates the sign-in round trip.
	AuthDelay = 1500 * time.Millisecond
)

// View is a top-level screen.
type View string

const (
	Landing View = "LANDING"
	Auth    View = "AUTH"
	Home    View = "HOME"
	Learn   View = "LEARN"
	Mentor  View = "MENTOR"
	Tools   View = "TOOLS"
	Books   View = "BOOKS"
)

// MainViews are the views reachable from the navigation bar, in bar order.
var MainViews = []View{Home, Learn, Mentor, Tools, Books}

// Label is the navigation bar caption.
func (v View) Label() string {
	switch v {
	case Home:
		return "Home"
	case Learn:
		return "Learn"
	case Mentor:
		return "Mentor"
	case Tools:
		return "Tools"
	case Books:
		return "Library"
	case Auth:
		return "Sign in"
	default:
		return "Welcome"
	}
}

// ProfileUpdater merges partial updates into the profile.
type ProfileUpdater interface {
	Update(ctx context.Context, u profile.Updates) (profile.UserProfile, error)
}

// Controller holds the navigation state.
type Controller struct {
	profiles ProfileUpdater
	log      *logger.Logger

	mu         sync.Mutex
	view       View
	splashDone bool
	timer      *time.Timer
	onSplash   func()
}

// NewController starts on the Landing view with the splash showing.
func NewController(profiles ProfileUpdater, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		profiles: profiles,
		log:      log.With("component", "nav"),
		view:     Landing,
	}
}

// StartSplash schedules CompleteSplash after d. onDone, when non-nil, runs
// on the timer goroutine once the splash completes by any route.
func (c *Controller) StartSplash(d time.Duration, onDone func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.splashDone || c.timer != nil {
		return
	}
	c.onSplash = onDone
	c.timer = time.AfterFunc(d, c.CompleteSplash)
}

// CompleteSplash hides the splash. Calls after the first have no effect.
func (c *Controller) CompleteSplash() {
	c.mu.Lock()
	if c.splashDone {
		c.mu.Unlock()
		return
	}
	c.splashDone = true
	if c.timer != nil {
		c.timer.Stop()
	}
	done := c.onSplash
	c.onSplash = nil
	c.mu.Unlock()

	if done != nil {
		done()
	}
}

// SplashDone reports whether the splash has completed.
func (c *Controller) SplashDone() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.splashDone
}

// Close stops the splash timer and completes the splash.
func (c *Controller) Close() {
	c.CompleteSplash()
}

// Navigate makes v the active view.
func (c *Controller) Navigate(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != v {
		c.log.Debug("navigate", "from", string(c.view), "to", string(v))
	}
	c.view = v
}

// Current returns the active view.
func (c *Controller) Current() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// ShowNavigation reports whether the navigation bar is visible.
func (c *Controller) ShowNavigation() bool {
	v := c.Current()
	return v != Landing && v != Auth
}

// Login merges u into the profile and goes to Home. A failed save is
// returned but Home is still shown.
func (c *Controller) Login(ctx context.Context, u profile.Updates) error {
	_, err := c.profiles.Update(ctx, u)
	c.Navigate(Home)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if u.Name != nil {
		c.log.Info("signed in", "name", *u.Name)
	}
	return nil
}

// AuthMethod is a simulated sign-in option.
type AuthMethod string

const (
	Google   AuthMethod = "Google"
	Apple    AuthMethod = "Apple"
	Facebook AuthMethod = "Facebook"
	X        AuthMethod = "X"
	Phone    AuthMethod = "Phone"
	Email    AuthMethod = "Email"
)

// AuthMethods lists the sign-in options in display order.
var AuthMethods = []AuthMethod{Google, Apple, Facebook, X, Phone, Email}

// ErrMissingInput is returned when phone or email sign-in has no input.
var ErrMissingInput = errors.New("input is required")

// AuthDisplayName returns the profile name a simulated sign-in yields.
// Phone and email require non-blank input.
func AuthDisplayName(m AuthMethod, input string) (string, error) {
	switch m {
	case Phone:
		if strings.TrimSpace(input) == "" {
			return "", fmt.Errorf("phone number: %w", ErrMissingInput)
		}
		return profile.DefaultName, nil
	case Email:
		if strings.TrimSpace(input) == "" {
			return "", fmt.Errorf("email address: %w", ErrMissingInput)
		}
		return "Email User", nil
	case Google, Apple, Facebook, X:
		return string(m) + " User", nil
	default:
		return "", fmt.Errorf("unknown sign-in method %q", m)
	}
}

// NeedsInput reports whether the method asks for a phone number or email.
func (m AuthMethod) NeedsInput() bool {
	return m == Phone || m == Email
}
