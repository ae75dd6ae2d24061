package home

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/founderpath/founderpath/internal/profile"
)

type fakeProfile struct {
	p profile.UserProfile
}

func (f fakeProfile) Current() profile.UserProfile { return f.p }

func (f fakeProfile) Recent(n int) []string {
	done := f.p.CompletedLessons
	var out []string
	for i := len(done) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, done[i])
	}
	return out
}

type countingTips struct {
	calls atomic.Int32
}

func (c *countingTips) GenerateDailyTip(context.Context) string {
	c.calls.Add(1)
	return "Talk to ten customers this week."
}

func TestTipFetchedOnce(t *testing.T) {
	src := &countingTips{}
	tip := NewTip(src)

	if tip.Text() != TipLoading {
		t.Errorf("before fetch = %q, want loading text", tip.Text())
	}
	for range 3 {
		tip.Fetch(t.Context())
	}
	if src.calls.Load() != 1 {
		t.Errorf("GenerateDailyTip called %d times, want 1", src.calls.Load())
	}
	if tip.Text() != "Talk to ten customers this week." {
		t.Errorf("tip = %q", tip.Text())
	}
}

func TestInitSkipsLoadedTip(t *testing.T) {
	src := &countingTips{}
	tip := NewTip(src)

	h := New(fakeProfile{p: profile.Default()}, tip, nil)
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("first home visit should fetch the tip")
	}
	cmd()

	again := New(fakeProfile{p: profile.Default()}, tip, nil)
	if again.Init() != nil {
		t.Error("tip should not be fetched again in the same session")
	}
}

func TestViewEmptyJourney(t *testing.T) {
	h := New(fakeProfile{p: profile.Default()}, nil, nil)
	out := h.View(100, 40)
	for _, want := range []string{"Welcome back,", "Start your first lesson today.", TipLoading} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewRecentLessons(t *testing.T) {
	p := profile.Default()
	p.XP = 325
	p.CompletedLessons = []string{"First", "Second", "Third", "Fourth"}
	out := New(fakeProfile{p: p}, nil, nil).View(100, 40)

	if strings.Contains(out, "First") {
		t.Error("only the last three lessons should be listed")
	}
	if !strings.Contains(out, "325") {
		t.Error("view should show total XP")
	}
	if i, j := strings.Index(out, "Fourth"), strings.Index(out, "Second"); i < 0 || j < 0 || i > j {
		t.Error("journey should list the most recent lesson first")
	}
}

func TestVariantFor(t *testing.T) {
	tests := []struct {
		picture bool
		done    int
		want    AvatarVariant
	}{
		{false, 0, AvatarInitial},
		{true, 1, AvatarPicture},
		{true, 5, AvatarVeteran},
		{false, 7, AvatarVeteran},
	}
	for _, tt := range tests {
		if got := VariantFor(tt.picture, tt.done); got != tt.want {
			t.Errorf("VariantFor(%v, %d) = %d, want %d", tt.picture, tt.done, got, tt.want)
		}
	}
}
