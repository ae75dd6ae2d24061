package tools

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/router"
	"github.com/founderpath/founderpath/internal/tools"
)

type fakeGen struct {
	prompts []string
}

func (g *fakeGen) GenerateToolDocument(_ context.Context, tmpl string, values map[string]string) string {
	g.prompts = append(g.prompts, tools.Interpolate(tmpl, values))
	return "# SWOT\nStrengths: speed."
}

var swot = catalog.ToolTemplate{
	ID:             "swot",
	Name:           "SWOT Analysis",
	PromptTemplate: "Analyze {{description}}.",
	Inputs:         []catalog.ToolInput{{Label: "Business Description", Key: "description"}},
}

func typeText(f *FormScreen, s string) {
	for _, r := range s {
		f.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestGenerateWithEmptyInputs(t *testing.T) {
	gen := &fakeGen{}
	f := NewForm(tools.NewRun(gen, swot, nil))
	f.Init()

	if f.generate() == nil {
		t.Fatal("generate should start with empty fields")
	}
	_, ok := f.run.Generate(t.Context())
	f.Update(generatedMsg{ok: ok})

	if len(gen.prompts) != 1 || gen.prompts[0] != "Analyze ." {
		t.Errorf("prompts = %q", gen.prompts)
	}
}

func TestGenerateIgnoredWhileGenerating(t *testing.T) {
	f := NewForm(tools.NewRun(&fakeGen{}, swot, nil))
	f.Init()

	if f.generate() == nil {
		t.Fatal("first generate should start")
	}
	if f.generate() != nil {
		t.Error("second generate should be ignored while generating")
	}
}

func TestGenerateShowsOutput(t *testing.T) {
	gen := &fakeGen{}
	f := NewForm(tools.NewRun(gen, swot, nil))
	f.Init()

	typeText(f, "a bakery")
	if f.generate() == nil {
		t.Fatal("generate should start")
	}
	// Run the generation synchronously instead of through tea.Batch.
	_, ok := f.run.Generate(t.Context())
	f.Update(generatedMsg{ok: ok})

	if len(gen.prompts) != 1 || gen.prompts[0] != "Analyze a bakery." {
		t.Errorf("prompts = %q", gen.prompts)
	}
	if f.CapturingInput() {
		t.Error("output view should release input")
	}
	if !strings.Contains(f.View(100, 40), "Strengths: speed.") {
		t.Error("output should be shown")
	}

	f.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if f.run.Output() != "" || f.run.Value("description") != "a bakery" {
		t.Error("r should return to the form keeping values")
	}
}

func TestListPushesForm(t *testing.T) {
	s := New([]catalog.ToolTemplate{swot}, &fakeGen{}, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should open the tool")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "SWOT Analysis" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}
