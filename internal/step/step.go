// Package step handles step list parsing, validation, and preparation
package step

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/voskv/screentap/internal/errors"
)

// Mode selects the matching strategy for one step.
type Mode string

const (
	ModeText         Mode = "text"
	ModeTemplate     Mode = "template"
	ModeTemplateText Mode = "template+text"
)

// NeedsText reports whether the mode requires keywords and OCR settings.
func (m Mode) NeedsText() bool { return m == ModeText || m == ModeTemplateText }

// NeedsTemplate reports whether the mode requires a reference image.
func (m Mode) NeedsTemplate() bool { return m == ModeTemplate || m == ModeTemplateText }

// Spec is one raw step entry as written by the user. The numeric fields
// are pointers so an explicit zero is distinguishable from an absent key;
// run-level defaults apply only when the key is absent.
type Spec struct {
	Mode      string   `json:"mode" yaml:"mode"`
	Target    Targets  `json:"target,omitempty" yaml:"target,omitempty"`
	Template  string   `json:"template,omitempty" yaml:"template,omitempty"`
	TplThresh *float64 `json:"tpl_thresh,omitempty" yaml:"tpl_thresh,omitempty"`
	OCRConf   *int     `json:"ocr_conf,omitempty" yaml:"ocr_conf,omitempty"`
	OCRLang   string   `json:"ocr_lang,omitempty" yaml:"ocr_lang,omitempty"`
}

// Targets accepts either a single "a|b"-separated string or a string list.
type Targets []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Targets) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = splitTargets(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = normalizeTargets(list)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Targets) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		*t = splitTargets(s)
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*t = normalizeTargets(list)
	return nil
}

// ParseTargets splits a "|"-separated keyword string, dropping blanks.
func ParseTargets(s string) Targets {
	return splitTargets(s)
}

func splitTargets(s string) []string {
	return normalizeTargets(strings.Split(s, "|"))
}

func normalizeTargets(list []string) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Defaults supplies run-level values for fields a step entry leaves unset.
type Defaults struct {
	Template  string
	TplThresh float64
	OCRConf   int
	OCRLang   string
}

// Step is one prepared, immutable unit of the automation cycle.
type Step struct {
	Mode         Mode
	Keywords     []string
	OCRConf      int
	OCRLang      string
	TemplatePath string
	Template     image.Image
	TplThresh    float64
}

// TemplateName returns the template file base name for logging.
func (s Step) TemplateName() string {
	if s.TemplatePath == "" {
		return ""
	}
	return filepath.Base(s.TemplatePath)
}

// ParseJSON decodes an inline JSON step list.
func ParseJSON(raw string) ([]Spec, error) {
	var specs []Spec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "cannot parse steps JSON")
	}
	return specs, nil
}

// ParseFile decodes a step list from a YAML (or JSON) file.
func ParseFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeConfigMissing, "cannot read steps file %s", path)
	}
	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeConfigInvalid, "cannot parse steps file %s", path)
	}
	return specs, nil
}

// Prepare validates raw specs, resolves defaults and loads template images.
// Any failure here is fatal; the run must not start.
func Prepare(specs []Spec, def Defaults) ([]Step, error) {
	if len(specs) == 0 {
		return nil, apperrors.New(apperrors.CodeConfigMissing, "step list is empty")
	}

	steps := make([]Step, 0, len(specs))
	for i, spec := range specs {
		mode, ok := parseMode(spec.Mode)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeConfigInvalid, "step %d: invalid mode %q", i+1, spec.Mode)
		}

		st := Step{Mode: mode}

		if mode.NeedsText() {
			if len(spec.Target) == 0 {
				return nil, apperrors.Newf(apperrors.CodeConfigMissing, "step %d: text step requires a target", i+1)
			}
			st.Keywords = spec.Target
			st.OCRConf = def.OCRConf
			if spec.OCRConf != nil {
				st.OCRConf = *spec.OCRConf
			}
			st.OCRLang = spec.OCRLang
			if st.OCRLang == "" {
				st.OCRLang = def.OCRLang
			}
		}

		if mode.NeedsTemplate() {
			path := spec.Template
			if path == "" {
				path = def.Template
			}
			if path == "" {
				path = "./image.png"
			}
			abs, err := filepath.Abs(path)
			if err == nil {
				path = abs
			}
			img, err := loadImage(path)
			if err != nil {
				return nil, apperrors.Wrapf(err, apperrors.CodeTemplateUnreadable, "step %d: cannot load template %s", i+1, path)
			}
			st.TemplatePath = path
			st.Template = img
			st.TplThresh = def.TplThresh
			if spec.TplThresh != nil {
				st.TplThresh = *spec.TplThresh
			}
		}

		steps = append(steps, st)
	}
	return steps, nil
}

// parseMode maps a user-supplied mode string to its canonical Mode,
// accepting the legacy aliases.
func parseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "ocr":
		return ModeText, true
	case "template":
		return ModeTemplate, true
	case "template+text", "template_ocr", "template-then-text":
		return ModeTemplateText, true
	default:
		return "", false
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
