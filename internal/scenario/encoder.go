package scenario

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/openassess/openassess/internal/assessment"
	"github.com/openassess/openassess/internal/block"
)

// Encode writes cfg back out as a scenario document. Encoding then parsing
// yields an equivalent config, so authored blocks can be exported.
func Encode(w io.Writer, cfg block.Config) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "openassessment"}}
	root.Attr = appendAttr(root.Attr, "course_id", cfg.CourseID)
	root.Attr = appendAttr(root.Attr, "start", cfg.Start)
	root.Attr = appendAttr(root.Attr, "due", cfg.Due)
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	if cfg.Title != "" {
		if err := encodeText(enc, "title", cfg.Title); err != nil {
			return err
		}
	}
	if err := encodeText(enc, "prompt", cfg.Prompt); err != nil {
		return err
	}
	if err := encodeRubric(enc, cfg); err != nil {
		return err
	}
	for _, st := range cfg.AssessmentStages {
		if err := encodeStage(enc, st); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeRubric(enc *xml.Encoder, cfg block.Config) error {
	rub := xml.StartElement{Name: xml.Name{Local: "rubric"}}
	if err := enc.EncodeToken(rub); err != nil {
		return err
	}
	if err := encodeText(enc, "instructions", cfg.RubricInstructions); err != nil {
		return err
	}
	for _, c := range cfg.RubricCriteria {
		cs := xml.StartElement{Name: xml.Name{Local: "criterion"}}
		cs.Attr = appendAttr(cs.Attr, "name", c.Name)
		cs.Attr = appendAttr(cs.Attr, "instructions", c.Instructions)
		cs.Attr = appendAttr(cs.Attr, "total_value", strconv.Itoa(c.TotalValue))
		if err := enc.EncodeToken(cs); err != nil {
			return err
		}
		for _, o := range c.Options {
			os := xml.StartElement{Name: xml.Name{Local: "option"}}
			os.Attr = appendAttr(os.Attr, "points", strconv.Itoa(o.Points))
			os.Attr = appendAttr(os.Attr, "label", o.Label)
			if err := enc.EncodeToken(os); err != nil {
				return err
			}
			if err := enc.EncodeToken(xml.CharData(o.Explanation)); err != nil {
				return err
			}
			if err := enc.EncodeToken(os.End()); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(cs.End()); err != nil {
			return err
		}
	}
	return enc.EncodeToken(rub.End())
}

func encodeStage(enc *xml.Encoder, st assessment.StageConfig) error {
	se := xml.StartElement{Name: xml.Name{Local: st.Name}}
	se.Attr = appendAttr(se.Attr, "start", st.Start)
	se.Attr = appendAttr(se.Attr, "due", st.Due)
	if st.Name == assessment.KindPeer {
		se.Attr = appendAttr(se.Attr, "must_grade", strconv.Itoa(st.MustGrade))
		se.Attr = appendAttr(se.Attr, "must_be_graded_by", strconv.Itoa(st.MustBeGradedBy))
	}
	if err := enc.EncodeToken(se); err != nil {
		return err
	}
	return enc.EncodeToken(se.End())
}

func encodeText(enc *xml.Encoder, name, text string) error {
	se := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(se); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(se.End())
}

func appendAttr(attrs []xml.Attr, name, value string) []xml.Attr {
	if value == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}
