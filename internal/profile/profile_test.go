package profile

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/founderpath/founderpath/internal/store"
)

type memRepo struct {
	docs    map[string]json.RawMessage
	saves   int
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[string]json.RawMessage)}
}

func (m *memRepo) Load(_ context.Context, key string) (json.RawMessage, error) {
	return m.docs[key], nil
}

func (m *memRepo) Save(_ context.Context, key string, data json.RawMessage) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.docs[key] = data
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.docs, key)
	return nil
}

func TestLoadFirstRunSavesDefaults(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)

	p, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(p, Default()) {
		t.Fatalf("profile = %+v, want defaults", p)
	}
	if _, ok := repo.docs[store.ProfileKey]; !ok {
		t.Fatal("defaults were not persisted under the profile key")
	}
}

func TestLoadOverwritesDefaults(t *testing.T) {
	repo := newMemRepo()
	repo.docs[store.ProfileKey] = json.RawMessage(`{"name":"Ada","xp":150,"completedLessons":["Fundraising 101"]}`)

	svc := NewService(repo, nil)
	p, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Ada" || p.XP != 150 || len(p.CompletedLessons) != 1 {
		t.Fatalf("profile = %+v", p)
	}
}

func TestLoadNullLessonsNormalized(t *testing.T) {
	repo := newMemRepo()
	repo.docs[store.ProfileKey] = json.RawMessage(`{"name":"Ada","xp":0,"completedLessons":null}`)

	p, err := NewService(repo, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.CompletedLessons == nil {
		t.Fatal("completed lessons should be an empty list, not nil")
	}
}

func TestXPIsSumOfAwards(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	awards := []int{50, 100, 75, 50}
	sum, prev := 0, 0
	for i, xp := range awards {
		p, err := svc.AddCompletion(ctx, "Lesson", xp)
		if err != nil {
			t.Fatalf("AddCompletion %d: %v", i, err)
		}
		sum += xp
		if p.XP != sum {
			t.Errorf("after %d completions xp = %d, want %d", i+1, p.XP, sum)
		}
		if p.XP < prev {
			t.Errorf("xp decreased from %d to %d", prev, p.XP)
		}
		prev = p.XP
	}
	if got := len(svc.Current().CompletedLessons); got != len(awards) {
		t.Errorf("completed lessons = %d, want %d (duplicates kept)", got, len(awards))
	}
	if repo.saves != len(awards) {
		t.Errorf("saves = %d, want one per mutation", repo.saves)
	}
}

func TestAddCompletionRejectsNegative(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)

	_, err := svc.AddCompletion(context.Background(), "Bad", -10)
	if !errors.Is(err, ErrNegativeXP) {
		t.Fatalf("err = %v, want ErrNegativeXP", err)
	}
	if svc.Current().XP != 0 || repo.saves != 0 {
		t.Fatal("rejected completion mutated the profile")
	}
}

func TestUpdateMergesOnlySetFields(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()

	if _, err := svc.AddCompletion(ctx, "MVP", 75); err != nil {
		t.Fatal(err)
	}
	name := "Google User"
	p, err := svc.Update(ctx, Updates{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Name != name || p.XP != 75 || p.CompletedLessons[0] != "MVP" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestSaveFailureKeepsInMemoryChange(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("disk full")
	svc := NewService(repo, nil)

	_, err := svc.AddCompletion(context.Background(), "Pitching", 50)
	if err == nil {
		t.Fatal("expected save error")
	}
	if svc.Current().XP != 50 {
		t.Fatalf("xp = %d, want 50", svc.Current().XP)
	}
}

func TestRecentMostRecentFirst(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C", "D"} {
		if _, err := svc.AddCompletion(ctx, title, 50); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		n    int
		want []string
	}{
		{3, []string{"D", "C", "B"}},
		{10, []string{"D", "C", "B", "A"}},
		{0, []string{}},
	}
	for _, tt := range tests {
		if got := svc.Recent(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	if _, err := svc.AddCompletion(context.Background(), "Original", 50); err != nil {
		t.Fatal(err)
	}
	p := svc.Current()
	p.CompletedLessons[0] = "Tampered"
	if svc.Current().CompletedLessons[0] != "Original" {
		t.Fatal("Current leaked internal slice")
	}
}

func TestResetKeepsXP(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	name := "Ada"
	if _, err := svc.Update(ctx, Updates{Name: &name}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddCompletion(ctx, "X", 100); err != nil {
		t.Fatal(err)
	}
	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	want := Default()
	want.XP = 100
	if !reflect.DeepEqual(svc.Current(), want) {
		t.Fatalf("profile = %+v, want %+v", svc.Current(), want)
	}

	reloaded := NewService(repo, nil)
	got, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.XP != 100 {
		t.Fatalf("reloaded xp = %d, want 100", got.XP)
	}
}

func TestRoundTripThroughStores(t *testing.T) {
	sq, err := store.Open(filepath.Join(t.TempDir(), "p.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	jsonRepo, err := store.NewJSONProfileRepo(filepath.Join(t.TempDir(), "p.json"))
	if err != nil {
		t.Fatal(err)
	}

	repos := map[string]store.ProfileRepo{
		"sqlite": sq.ProfileRepo(),
		"json":   jsonRepo,
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := NewService(repo, nil)
			if _, err := svc.Load(ctx); err != nil {
				t.Fatal(err)
			}
			n := "Grace"
			pic := "data:image/png;base64,iVBORw0KGgo="
			if _, err := svc.Update(ctx, Updates{Name: &n, ProfilePicture: &pic}); err != nil {
				t.Fatal(err)
			}
			if _, err := svc.AddCompletion(ctx, "Unit Economics", 100); err != nil {
				t.Fatal(err)
			}
			want := svc.Current()

			got, err := NewService(repo, nil).Load(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}
