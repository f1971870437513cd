package scenario

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/block"
	"github.com/openassess/openassess/internal/rubric"
)

const fullDoc = `<openassessment course_id="edX/Demo/2026" start="2026-01-01T00:00:00Z" due="2026-06-01T00:00:00Z">
  <title>Global Poverty</title>
  <prompt>What should be done to combat poverty?</prompt>
  <rubric>
    <instructions>Read carefully.</instructions>
    <criterion name="concise" instructions="How concise is it?" total_value="5">
      <option points="5" label="Tweet">Short and sweet.</option>
      <option points="0" label="The Bible">Way too long.</option>
    </criterion>
  </rubric>
  <peer-assessment start="2026-02-01T00:00:00Z" must_grade="5" must_be_graded_by="3"/>
  <self-assessment/>
</openassessment>`

func TestParseFullDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(fullDoc), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Title != "Global Poverty" {
		t.Errorf("title = %q", cfg.Title)
	}
	if cfg.CourseID != "edX/Demo/2026" {
		t.Errorf("course_id = %q", cfg.CourseID)
	}
	if cfg.RubricInstructions != "Read carefully." {
		t.Errorf("rubric_instructions = %q", cfg.RubricInstructions)
	}
	if len(cfg.RubricCriteria) != 1 {
		t.Fatalf("criteria = %d, want 1", len(cfg.RubricCriteria))
	}
	// Options come back sorted ascending even though the document listed 5 first.
	opts := cfg.RubricCriteria[0].Options
	if len(opts) != 2 || opts[0].Points != 0 || opts[1].Points != 5 {
		t.Fatalf("options not normalized: %+v", opts)
	}
	if len(cfg.AssessmentStages) != 2 {
		t.Fatalf("stages = %d, want 2", len(cfg.AssessmentStages))
	}
	peer := cfg.AssessmentStages[0]
	if peer.Name != assessment.KindPeer || peer.MustGrade != 5 || peer.MustBeGradedBy != 3 {
		t.Errorf("peer stage = %+v", peer)
	}
	if cfg.AssessmentStages[1].Name != assessment.KindSelf {
		t.Errorf("second stage = %+v", cfg.AssessmentStages[1])
	}
}

func TestParseEmptyDocumentGetsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`<openassessment/>`), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.RubricCriteria) != 5 {
		t.Fatalf("criteria = %d, want the default 5", len(cfg.RubricCriteria))
	}
	names := []string{}
	for _, c := range cfg.RubricCriteria {
		names = append(names, c.Name)
	}
	want := []string{"Ideas", "Content", "Organization", "Style", "Voice"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("criterion names = %v, want %v", names, want)
	}
	if len(cfg.AssessmentStages) != 1 {
		t.Fatalf("stages = %d, want exactly 1", len(cfg.AssessmentStages))
	}
	st := cfg.AssessmentStages[0]
	if st.Name != assessment.KindPeer || st.MustGrade != 5 || st.MustBeGradedBy != 3 {
		t.Fatalf("default stage = %+v", st)
	}
	if st.Start == "" {
		t.Error("default stage has no start time")
	}
	if cfg.Prompt == "" {
		t.Error("default prompt missing")
	}
}

func TestParseEmptyRubricGetsDefaultCriteria(t *testing.T) {
	doc := `<openassessment><rubric><instructions>Be kind.</instructions></rubric></openassessment>`
	cfg, err := Parse(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.RubricCriteria) != 5 {
		t.Fatalf("criteria = %d, want 5", len(cfg.RubricCriteria))
	}
	if cfg.RubricInstructions != "Be kind." {
		t.Errorf("instructions = %q", cfg.RubricInstructions)
	}
}

func TestUnknownChildrenForwardedInOrder(t *testing.T) {
	doc := `<openassessment>
	  <vertical><p>nested</p></vertical>
	  <prompt>Hi</prompt>
	  <video url="x"/>
	  <vertical/>
	</openassessment>`
	var seen []string
	cfg, err := Parse(strings.NewReader(doc), func(n Node) error {
		seen = append(seen, n.XMLName.Local)
		return nil
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"vertical", "video", "vertical"}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("unknown nodes = %v, want %v", seen, want)
	}
	if cfg.Prompt != "Hi" {
		t.Errorf("prompt = %q", cfg.Prompt)
	}
}

func TestUnknownCallbackErrorStopsParse(t *testing.T) {
	doc := `<openassessment><video/></openassessment>`
	_, err := Parse(strings.NewReader(doc), func(n Node) error {
		return errors.New("no room")
	})
	if err == nil {
		t.Fatal("callback error swallowed")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing criterion name", `<openassessment><rubric><criterion total_value="5"><option points="0" label="x">e</option></criterion></rubric></openassessment>`},
		{"missing option points", `<openassessment><rubric><criterion name="c"><option label="x">e</option></criterion></rubric></openassessment>`},
		{"negative option points", `<openassessment><rubric><criterion name="c"><option points="-1" label="x">e</option></criterion></rubric></openassessment>`},
		{"bad must_grade", `<openassessment><peer-assessment must_grade="five"/></openassessment>`},
		{"wrong root", `<quiz/>`},
		{"truncated document", `<openassessment><rubric>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.doc), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("error is %T, want *ConfigurationError: %v", err, err)
			}
		})
	}
}

func TestUnknownAttributesIgnored(t *testing.T) {
	doc := `<openassessment bogus="1"><rubric><criterion name="c" wat="2"><option points="0" label="x" extra="3">e</option></criterion></rubric></openassessment>`
	if _, err := Parse(strings.NewReader(doc), nil); err != nil {
		t.Fatalf("unknown attributes should be ignored: %v", err)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	cfg := block.Config{
		Title:              "Global Poverty",
		Prompt:             "What should be done to combat poverty?",
		RubricInstructions: "Read carefully.",
		RubricCriteria: []rubric.Criterion{
			{
				Name:         "concise",
				Instructions: "How concise is it?",
				TotalValue:   5,
				Options: []rubric.Option{
					{Points: 0, Label: "The Bible", Explanation: "Way too long."},
					{Points: 5, Label: "Tweet", Explanation: "Short and sweet."},
				},
			},
		},
		AssessmentStages: []assessment.StageConfig{
			{Name: assessment.KindPeer, Start: "2026-02-01T00:00:00Z", MustGrade: 5, MustBeGradedBy: 3},
			{Name: assessment.KindSelf, Due: "2026-06-01T00:00:00Z"},
		},
		CourseID: "edX/Demo/2026",
		Start:    "2026-01-01T00:00:00Z",
		Due:      "2026-06-01T00:00:00Z",
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(&buf, nil)
	if err != nil {
		t.Fatalf("Parse(encoded): %v\ndocument:\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestWorkbenchScenariosParse(t *testing.T) {
	for _, sc := range block.WorkbenchScenarios() {
		if _, err := Parse(strings.NewReader(sc.XML), nil); err != nil {
			t.Errorf("scenario %q: %v", sc.Title, err)
		}
	}
}
