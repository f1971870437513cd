// Package scenario translates declarative authoring documents into block
// configuration, and back. The document root is <openassessment>; recognized
// children are title, prompt, rubric (criterion/option), and the
// peer-assessment / self-assessment stage elements. Anything else is handed
// to the caller's unknown-node callback, in document order, so hosts can
// embed arbitrary child blocks.
package scenario

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/block"
	"github.com/openassess/openassess/internal/rubric"
)

// ConfigurationError identifies the element (and attribute, if any) that
// made a scenario document unusable. Fatal at parse time; nothing is
// persisted on failure.
type ConfigurationError struct {
	Element string
	Attr    string
	Msg     string
}

func (e *ConfigurationError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("scenario: <%s> attribute %q: %s", e.Element, e.Attr, e.Msg)
	}
	return fmt.Sprintf("scenario: <%s>: %s", e.Element, e.Msg)
}

// Node is an unrecognized child subtree, passed verbatim to the callback.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

// UnknownFunc receives each unrecognized root child exactly once.
type UnknownFunc func(n Node) error

// Parse walks the document and produces a block config. Missing rubric
// criteria and missing stages fall back to the stock defaults; unknown
// attributes are ignored.
func Parse(r io.Reader, unknown UnknownFunc) (block.Config, error) {
	dec := xml.NewDecoder(r)

	root, err := findRoot(dec)
	if err != nil {
		return block.Config{}, err
	}

	cfg := block.Config{CourseID: block.DefaultCourseID}
	for _, a := range root.Attr {
		switch a.Name.Local {
		case "course_id":
			cfg.CourseID = a.Value
		case "start":
			cfg.Start = a.Value
		case "due":
			cfg.Due = a.Value
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return block.Config{}, &ConfigurationError{Element: "openassessment", Msg: err.Error()}
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "title":
			if cfg.Title, err = decodeText(dec, &se); err != nil {
				return block.Config{}, err
			}
		case "prompt":
			if cfg.Prompt, err = decodeText(dec, &se); err != nil {
				return block.Config{}, err
			}
		case "rubric":
			instructions, criteria, err := parseRubric(dec, &se)
			if err != nil {
				return block.Config{}, err
			}
			if instructions != "" {
				cfg.RubricInstructions = instructions
			}
			cfg.RubricCriteria = criteria
		case assessment.KindPeer, assessment.KindSelf:
			st, err := parseStage(dec, &se)
			if err != nil {
				return block.Config{}, err
			}
			cfg.AssessmentStages = append(cfg.AssessmentStages, st)
		default:
			var n Node
			if err := dec.DecodeElement(&n, &se); err != nil {
				return block.Config{}, &ConfigurationError{Element: se.Name.Local, Msg: err.Error()}
			}
			if unknown != nil {
				if err := unknown(n); err != nil {
					return block.Config{}, fmt.Errorf("embed <%s>: %w", n.XMLName.Local, err)
				}
			}
		}
	}

	applyDefaults(&cfg)
	rubric.Normalize(cfg.RubricCriteria)
	if err := rubric.Validate(cfg.RubricCriteria); err != nil {
		return block.Config{}, &ConfigurationError{Element: "rubric", Msg: err.Error()}
	}
	return cfg, nil
}

func applyDefaults(cfg *block.Config) {
	if cfg.RubricInstructions == "" {
		cfg.RubricInstructions = block.DefaultRubricInstructions
	}
	// An empty <rubric> still falls back to the stock criteria.
	if len(cfg.RubricCriteria) == 0 {
		cfg.RubricCriteria = block.DefaultRubricCriteria()
	}
	if len(cfg.AssessmentStages) == 0 {
		cfg.AssessmentStages = []assessment.StageConfig{block.DefaultPeerStage(time.Now())}
	}
	if cfg.Start == "" {
		cfg.Start = time.Now().Format(time.RFC3339)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = block.DefaultPrompt
	}
}

func findRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, &ConfigurationError{Element: "openassessment", Msg: "document has no root element"}
		}
		if err != nil {
			return xml.StartElement{}, &ConfigurationError{Element: "openassessment", Msg: err.Error()}
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "openassessment" {
				return xml.StartElement{}, &ConfigurationError{Element: se.Name.Local, Msg: "expected <openassessment> root"}
			}
			return se, nil
		}
	}
}

func decodeText(dec *xml.Decoder, se *xml.StartElement) (string, error) {
	var v struct {
		Text string `xml:",chardata"`
	}
	if err := dec.DecodeElement(&v, se); err != nil {
		return "", &ConfigurationError{Element: se.Name.Local, Msg: err.Error()}
	}
	return strings.TrimSpace(v.Text), nil
}

func parseRubric(dec *xml.Decoder, start *xml.StartElement) (string, []rubric.Criterion, error) {
	var instructions string
	var criteria []rubric.Criterion
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", nil, &ConfigurationError{Element: "rubric", Msg: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "instructions":
				if instructions, err = decodeText(dec, &t); err != nil {
					return "", nil, err
				}
			case "criterion":
				c, err := parseCriterion(dec, &t)
				if err != nil {
					return "", nil, err
				}
				criteria = append(criteria, c)
			default:
				if err := dec.Skip(); err != nil {
					return "", nil, &ConfigurationError{Element: t.Name.Local, Msg: err.Error()}
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return instructions, criteria, nil
			}
		}
	}
}

func parseCriterion(dec *xml.Decoder, start *xml.StartElement) (rubric.Criterion, error) {
	var c rubric.Criterion
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			c.Name = a.Value
		case "instructions":
			c.Instructions = a.Value
		case "total_value":
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return rubric.Criterion{}, &ConfigurationError{Element: "criterion", Attr: "total_value", Msg: "must be an integer"}
			}
			c.TotalValue = n
		}
	}
	if c.Name == "" {
		return rubric.Criterion{}, &ConfigurationError{Element: "criterion", Attr: "name", Msg: "required"}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return rubric.Criterion{}, &ConfigurationError{Element: "criterion", Msg: err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "option" {
				if err := dec.Skip(); err != nil {
					return rubric.Criterion{}, &ConfigurationError{Element: t.Name.Local, Msg: err.Error()}
				}
				continue
			}
			o, err := parseOption(dec, &t)
			if err != nil {
				return rubric.Criterion{}, err
			}
			c.Options = append(c.Options, o)
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return c, nil
			}
		}
	}
}

func parseOption(dec *xml.Decoder, start *xml.StartElement) (rubric.Option, error) {
	var o rubric.Option
	var sawPoints bool
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "points":
			n, err := strconv.Atoi(a.Value)
			if err != nil || n < 0 {
				return rubric.Option{}, &ConfigurationError{Element: "option", Attr: "points", Msg: "must be a non-negative integer"}
			}
			o.Points = n
			sawPoints = true
		case "label":
			o.Label = a.Value
		}
	}
	if !sawPoints {
		return rubric.Option{}, &ConfigurationError{Element: "option", Attr: "points", Msg: "required"}
	}
	if o.Label == "" {
		return rubric.Option{}, &ConfigurationError{Element: "option", Attr: "label", Msg: "required"}
	}
	explanation, err := decodeText(dec, start)
	if err != nil {
		return rubric.Option{}, err
	}
	o.Explanation = explanation
	return o, nil
}

func parseStage(dec *xml.Decoder, start *xml.StartElement) (assessment.StageConfig, error) {
	st := assessment.StageConfig{Name: start.Name.Local}
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "start":
			st.Start = a.Value
		case "due":
			st.Due = a.Value
		case "must_grade":
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return assessment.StageConfig{}, &ConfigurationError{Element: start.Name.Local, Attr: "must_grade", Msg: "must be an integer"}
			}
			st.MustGrade = n
		case "must_be_graded_by":
			n, err := strconv.Atoi(a.Value)
			if err != nil {
				return assessment.StageConfig{}, &ConfigurationError{Element: start.Name.Local, Attr: "must_be_graded_by", Msg: "must be an integer"}
			}
			st.MustBeGradedBy = n
		}
	}
	if err := dec.Skip(); err != nil {
		return assessment.StageConfig{}, &ConfigurationError{Element: start.Name.Local, Msg: err.Error()}
	}
	return st, nil
}
