// Package block is the controller tying config, field persistence, mixin
// capabilities, and rendering together for one (usage_id, user_id) pair.
package block

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/fragment"
	"github.com/openassess/openassess/internal/render"
	"github.com/openassess/openassess/internal/submissions"
)

// ItemType tags every student item this block creates.
const ItemType = "openassessment"

// ErrCapabilityNotConfigured is returned by Invoke for stages the scenario
// never configured; their handlers are unreachable.
var ErrCapabilityNotConfigured = errors.New("capability not configured")

// InitializerJS is the client-side entry point named on rendered fragments.
const InitializerJS = "OpenAssessmentBlock"

type Block struct {
	UsageID string
	UserID  string
	Config  Config

	renderer *render.Renderer
	caps     map[string]assessment.Capability
	subs     submissions.API
}

// New composes a block from its config. The submission capability is always
// attached; peer/self capabilities only when their stage is configured.
func New(usageID, userID string, cfg Config, subs submissions.API, renderer *render.Renderer) *Block {
	b := &Block{
		UsageID:  usageID,
		UserID:   userID,
		Config:   cfg,
		renderer: renderer,
		subs:     subs,
		caps:     map[string]assessment.Capability{},
	}
	attach := func(name string) {
		if f := assessment.For(name); f != nil {
			b.caps[name] = f(subs)
		}
	}
	attach(assessment.CapabilitySubmission)
	for _, st := range cfg.AssessmentStages {
		attach(st.Name)
	}
	return b
}

// Trace returns the (usage_id, user_id) pair identifying this block-learner
// interaction. Useful for logging and uniqueification.
func (b *Block) Trace() [2]string {
	return [2]string{b.UsageID, b.UserID}
}

// StudentItem builds the key the submissions service files everything under.
func (b *Block) StudentItem() submissions.StudentItem {
	return submissions.StudentItem{
		StudentID: b.UserID,
		ItemID:    b.UsageID,
		CourseID:  b.Config.CourseID,
		ItemType:  ItemType,
	}
}

type GradeState struct {
	StyleClass string `json:"style_class"`
	Value      string `json:"value"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}

// GradeState is a static placeholder until stage completion tracking lands.
func (b *Block) GradeState() GradeState {
	return GradeState{
		StyleClass: "is--incomplete",
		Value:      "Incomplete",
		Title:      "Your Grade:",
		Message:    "You have not started this problem",
	}
}

func (b *Block) renderContext() map[string]any {
	uiModels := make([]assessment.UIModel, 0, len(b.Config.AssessmentStages))
	for _, st := range b.Config.AssessmentStages {
		uiModels = append(uiModels, st.UIModel())
	}
	return map[string]any{
		"xblock_trace":        b.Trace(),
		"title":               b.Config.Title,
		"question":            b.Config.Prompt,
		"rubric_instructions": b.Config.RubricInstructions,
		"rubric_criteria":     b.Config.RubricCriteria,
		"rubric_assessments":  uiModels,
		"grade_state":         b.GradeState(),
	}
}

// Render produces the student view as a fragment: markup plus the css/js
// bundle and the client initializer name.
func (b *Block) Render(ctx context.Context) (fragment.Fragment, error) {
	body, err := b.renderer.Render("oa_base.html", b.renderContext())
	if err != nil {
		return fragment.Fragment{}, fmt.Errorf("render student view: %w", err)
	}
	frag := fragment.Fragment{Body: string(body)}
	frag.AddCSS(b.renderer.CSSURL("openassessment.css"))
	frag.AddJS(b.renderer.JSURL("openassessment.js"))
	frag.InitializeWith(InitializerJS)
	return frag, nil
}

// RenderAssessment renders one named stage template with the shared
// trace/rubric context, for partial page updates. Unknown template names
// surface render.ErrTemplateNotFound.
func (b *Block) RenderAssessment(ctx context.Context, name string, extra map[string]any) ([]byte, error) {
	tctx := b.renderContext()
	for k, v := range extra {
		tctx[k] = v
	}
	return b.renderer.Render(name, tctx)
}

// StudioView is a placeholder authoring view.
func (b *Block) StudioView() fragment.Fragment {
	return fragment.Fragment{Body: "<div>Edit the block.</div>"}
}

// Invoke dispatches a host call to a composed capability by name. A stage
// absent from the config means its capability was never attached, so its
// handlers are unreachable.
func (b *Block) Invoke(ctx context.Context, capability, op string, payload json.RawMessage) (assessment.Result, error) {
	c, ok := b.caps[capability]
	if !ok {
		return assessment.Result{}, fmt.Errorf("%w: %q for block %s", ErrCapabilityNotConfigured, capability, b.UsageID)
	}
	h, ok := c.Handlers[op]
	if !ok {
		return assessment.Result{}, fmt.Errorf("capability %q has no operation %q", capability, op)
	}
	env := assessment.Env{
		Item:     b.StudentItem(),
		Criteria: b.Config.RubricCriteria,
	}
	for _, st := range b.Config.AssessmentStages {
		if st.Name == capability {
			env.Stage = st
			break
		}
	}
	return h(ctx, env, payload)
}
