package block_test

import (
	"context"
	"strings"
	"testing"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/block"
	"github.com/openassess/openassess/internal/fieldstore"
	"github.com/openassess/openassess/internal/render"
	"github.com/openassess/openassess/internal/submissions"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New("/static")
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return r
}

func newBlock(t *testing.T, cfg block.Config) *block.Block {
	t.Helper()
	return block.New("block-1", "student-1", cfg, submissions.NewInMemoryStore(), newRenderer(t))
}

func TestRenderWithEmptyPromptProducesFragment(t *testing.T) {
	cfg := block.DefaultConfig()
	cfg.Title = ""
	cfg.Prompt = ""
	frag, err := newBlock(t, cfg).Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.TrimSpace(frag.Body) == "" {
		t.Fatal("fragment body empty")
	}
	if len(frag.CSS) == 0 || len(frag.JS) == 0 {
		t.Fatalf("fragment missing resources: %+v", frag)
	}
	if frag.InitializeJS != block.InitializerJS {
		t.Errorf("initializer = %q", frag.InitializeJS)
	}
}

func TestRenderIncludesRubricAndStages(t *testing.T) {
	frag, err := newBlock(t, block.DefaultConfig()).Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{"Ideas", "Voice", "Assess Peers", "Incomplete"} {
		if !strings.Contains(frag.Body, want) {
			t.Errorf("fragment body missing %q", want)
		}
	}
}

func TestRenderAssessmentUnknownTemplate(t *testing.T) {
	b := newBlock(t, block.DefaultConfig())
	if _, err := b.RenderAssessment(context.Background(), "oa_nope.html", nil); err == nil {
		t.Fatal("expected template-not-found error")
	}
	out, err := b.RenderAssessment(context.Background(), "oa_peer_assessment.html", map[string]any{"peer_submission": "text"})
	if err != nil {
		t.Fatalf("RenderAssessment: %v", err)
	}
	if !strings.Contains(string(out), "Submit Peer Assessment") {
		t.Errorf("unexpected partial: %s", out)
	}
}

func TestStudentItem(t *testing.T) {
	item := newBlock(t, block.DefaultConfig()).StudentItem()
	want := submissions.StudentItem{
		StudentID: "student-1",
		ItemID:    "block-1",
		CourseID:  block.DefaultCourseID,
		ItemType:  "openassessment",
	}
	if item != want {
		t.Fatalf("StudentItem = %+v, want %+v", item, want)
	}
}

func TestGradeStateIsStaticPlaceholder(t *testing.T) {
	gs := newBlock(t, block.DefaultConfig()).GradeState()
	if gs.Value != "Incomplete" || gs.StyleClass != "is--incomplete" {
		t.Fatalf("grade state = %+v", gs)
	}
}

func TestInvokeUnconfiguredCapability(t *testing.T) {
	cfg := block.DefaultConfig() // peer only, no self stage
	b := newBlock(t, cfg)
	if _, err := b.Invoke(context.Background(), assessment.KindSelf, "assess", nil); err == nil {
		t.Fatal("self capability should be unreachable")
	}
	if _, err := b.Invoke(context.Background(), assessment.CapabilitySubmission, "submit", []byte(`{"submission":"hi"}`)); err != nil {
		t.Fatalf("submission capability missing: %v", err)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fields := fieldstore.NewInMemoryStore()

	cfg := block.DefaultConfig()
	cfg.Title = "Saved"
	cfg.AssessmentStages = append(cfg.AssessmentStages, assessment.StageConfig{Name: assessment.KindSelf})
	if err := block.SaveConfig(ctx, fields, "u-1", cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := block.LoadConfig(ctx, fields, "u-1")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Title != "Saved" || len(got.AssessmentStages) != 2 || len(got.RubricCriteria) != 5 {
		t.Fatalf("loaded config = %+v", got)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	got, err := block.LoadConfig(context.Background(), fieldstore.NewInMemoryStore(), "missing")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(got.RubricCriteria) != 5 || got.Prompt == "" || got.CourseID != block.DefaultCourseID {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if len(got.AssessmentStages) != 1 || got.AssessmentStages[0].MustGrade != 5 {
		t.Fatalf("default stage = %+v", got.AssessmentStages)
	}
}
