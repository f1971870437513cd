package block

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/fieldstore"
	"github.com/openassess/openassess/internal/rubric"
)

// Config is everything the host persists for one block instance. It is built
// once, from a scenario document or from defaults, and only changes through
// the host's field-update API.
type Config struct {
	Title              string                   `json:"title"`
	Prompt             string                   `json:"prompt"`
	RubricInstructions string                   `json:"rubric_instructions"`
	RubricCriteria     []rubric.Criterion       `json:"rubric_criteria"`
	AssessmentStages   []assessment.StageConfig `json:"rubric_assessments"`
	CourseID           string                   `json:"course_id"`
	Start              string                   `json:"start"`
	Due                string                   `json:"due"`
}

// Persisted field names, one host field per Config member.
const (
	FieldTitle              = "title"
	FieldPrompt             = "prompt"
	FieldRubricInstructions = "rubric_instructions"
	FieldRubricCriteria     = "rubric_criteria"
	FieldAssessments        = "rubric_assessments"
	FieldCourseID           = "course_id"
	FieldStart              = "start"
	FieldDue                = "due"
)

// SaveConfig writes every field of cfg through the host field store.
func SaveConfig(ctx context.Context, fields fieldstore.Store, usageID string, cfg Config) error {
	set := func(name string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		return fields.Set(ctx, usageID, name, string(b))
	}
	if err := set(FieldTitle, cfg.Title); err != nil {
		return err
	}
	if err := set(FieldPrompt, cfg.Prompt); err != nil {
		return err
	}
	if err := set(FieldRubricInstructions, cfg.RubricInstructions); err != nil {
		return err
	}
	if err := set(FieldRubricCriteria, cfg.RubricCriteria); err != nil {
		return err
	}
	if err := set(FieldAssessments, cfg.AssessmentStages); err != nil {
		return err
	}
	if err := set(FieldCourseID, cfg.CourseID); err != nil {
		return err
	}
	if err := set(FieldStart, cfg.Start); err != nil {
		return err
	}
	return set(FieldDue, cfg.Due)
}

// LoadConfig reads a block's fields, filling any unset field from defaults
// so every block renders without authoring input.
func LoadConfig(ctx context.Context, fields fieldstore.Store, usageID string) (Config, error) {
	cfg := DefaultConfig()
	get := func(name string, dst any) error {
		v, ok, err := fields.Get(ctx, usageID, name)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		if !ok {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	}
	if err := get(FieldTitle, &cfg.Title); err != nil {
		return Config{}, err
	}
	if err := get(FieldPrompt, &cfg.Prompt); err != nil {
		return Config{}, err
	}
	if err := get(FieldRubricInstructions, &cfg.RubricInstructions); err != nil {
		return Config{}, err
	}
	if err := get(FieldRubricCriteria, &cfg.RubricCriteria); err != nil {
		return Config{}, err
	}
	if err := get(FieldAssessments, &cfg.AssessmentStages); err != nil {
		return Config{}, err
	}
	if err := get(FieldCourseID, &cfg.CourseID); err != nil {
		return Config{}, err
	}
	if err := get(FieldStart, &cfg.Start); err != nil {
		return Config{}, err
	}
	if err := get(FieldDue, &cfg.Due); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
