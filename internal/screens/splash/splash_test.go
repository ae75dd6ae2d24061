package splash

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/screen"
)

func newTestSplash(d time.Duration) (*SplashScreen, *nav.Controller) {
	n := nav.NewController(nil, nil)
	done := make(chan struct{})
	n.StartSplash(d, func() { close(done) })
	return New(n, done), n
}

func sendTicks(s *SplashScreen, n int) {
	for i := 0; i < n; i++ {
		s.Update(tickMsg(time.Now()))
	}
}

func TestTaglineAppears(t *testing.T) {
	s, _ := newTestSplash(time.Hour)

	if strings.Contains(s.View(100, 30), "one lesson at a time") {
		t.Error("tagline should not be visible at start")
	}
	sendTicks(s, 8)
	if !strings.Contains(s.View(100, 30), "one lesson at a time") {
		t.Error("tagline should be visible after 800ms")
	}
}

func TestDoneNavigatesToCurrentView(t *testing.T) {
	s, _ := newTestSplash(time.Hour)

	_, cmd := s.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected a navigate command")
	}
	msg, ok := cmd().(screen.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", cmd())
	}
	if msg.View != nav.Landing {
		t.Errorf("view = %s, want LANDING", msg.View)
	}

	if _, cmd := s.Update(doneMsg{}); cmd != nil {
		t.Error("second done should not navigate again")
	}
}

func TestKeypressCompletesSplash(t *testing.T) {
	s, n := newTestSplash(time.Hour)

	s.Update(tea.KeyPressMsg{Code: ' '})
	if !n.SplashDone() {
		t.Fatal("keypress should complete the splash")
	}

	select {
	case <-s.done:
	default:
		t.Error("done channel should be closed")
	}
}

func TestTimerCompletesSplash(t *testing.T) {
	s, _ := newTestSplash(10 * time.Millisecond)

	msg := s.waitDone()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
}

func TestTitleEmpty(t *testing.T) {
	s, _ := newTestSplash(time.Hour)
	if s.Title() != "" {
		t.Errorf("expected empty title, got %q", s.Title())
	}
}
