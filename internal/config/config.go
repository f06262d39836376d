// Package config loads layout descriptions from YAML and builds them into
// rooted layouts.
//
// A description lists widgets, guides and constraints. Constraint ends are
// written as "<name>.<attribute>", where name is a widget, a guide or
// "super" for the layout itself:
//
//	width: 80
//	height: 24
//	widgets:
//	  - name: label
//	    min: {width: 5, height: 1}
//	    nat: {width: 12, height: 1}
//	guides:
//	  - name: gap
//	    min: {width: 2}
//	    nat: {width: 4}
//	constraints:
//	  - {target: label.left, relation: "==", source: super.left}
//	  - {target: gap.left, relation: "==", source: label.right}
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/grindlemire/go-constraint/internal/layout"
	"github.com/grindlemire/go-constraint/internal/solver"
)

// SuperName refers to the layout itself in constraint references.
const SuperName = "super"

// MaxFileSize bounds the size of a description file.
const MaxFileSize = 1 << 20

var (
	// ErrInvalid wraps struct validation failures.
	ErrInvalid = errors.New("config: invalid layout description")

	// ErrDuplicateName is returned when two widgets or guides share a name.
	ErrDuplicateName = errors.New("config: duplicate name")

	// ErrUnknownReference is returned when a constraint names an unknown
	// widget or guide.
	ErrUnknownReference = errors.New("config: unknown reference")
)

// Size is a width/height pair. A missing dimension is nil.
type Size struct {
	Width  *int `yaml:"width" validate:"omitempty,gte=0,lte=2147483647"`
	Height *int `yaml:"height" validate:"omitempty,gte=0,lte=2147483647"`
}

// orSentinel returns the dimensions with missing values replaced by def.
func (s Size) orSentinel(def int) (width, height int) {
	width, height = def, def
	if s.Width != nil {
		width = *s.Width
	}
	if s.Height != nil {
		height = *s.Height
	}
	return width, height
}

// Widget describes a placeholder child.
type Widget struct {
	Name string `yaml:"name" validate:"required,identifier"`
	Min  Size   `yaml:"min"`
	Nat  Size   `yaml:"nat"`
}

// Guide describes a guide. Missing dimensions keep the guide defaults.
type Guide struct {
	Name string `yaml:"name" validate:"required,identifier"`
	Min  Size   `yaml:"min"`
	Nat  Size   `yaml:"nat"`
	Max  Size   `yaml:"max"`
}

// Constraint describes target <relation> source * multiplier + constant.
// Without a source it is target <relation> constant.
type Constraint struct {
	Target     string   `yaml:"target" validate:"required,reference"`
	Relation   string   `yaml:"relation" validate:"required,relation"`
	Source     string   `yaml:"source" validate:"omitempty,reference"`
	Multiplier *float64 `yaml:"multiplier"`
	Constant   float64  `yaml:"constant"`
	Strength   string   `yaml:"strength" validate:"omitempty,strength"`
}

// File is a complete layout description.
type File struct {
	Direction   string       `yaml:"direction" validate:"omitempty,oneof=ltr rtl"`
	Width       int          `yaml:"width" validate:"gte=0"`
	Height      int          `yaml:"height" validate:"gte=0"`
	Widgets     []Widget     `yaml:"widgets" validate:"dive"`
	Guides      []Guide      `yaml:"guides" validate:"dive"`
	Constraints []Constraint `yaml:"constraints" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("identifier", validateIdentifier)
	_ = validate.RegisterValidation("reference", validateReference)
	_ = validate.RegisterValidation("relation", validateRelation)
	_ = validate.RegisterValidation("strength", validateStrength)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '-':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func validateIdentifier(fl validator.FieldLevel) bool {
	return isIdentifier(fl.Field().String())
}

func validateReference(fl validator.FieldLevel) bool {
	_, _, err := splitReference(fl.Field().String())
	return err == nil
}

func validateRelation(fl validator.FieldLevel) bool {
	_, err := solver.ParseRelation(fl.Field().String())
	return err == nil
}

func validateStrength(fl validator.FieldLevel) bool {
	_, err := solver.ParseStrength(fl.Field().String())
	return err == nil
}

// splitReference parses "<name>.<attribute>".
func splitReference(ref string) (string, layout.Attribute, error) {
	name, attr, ok := strings.Cut(ref, ".")
	if !ok || !isIdentifier(name) {
		return "", layout.AttributeNone, fmt.Errorf("config: malformed reference %q", ref)
	}
	a, err := layout.ParseAttribute(attr)
	if err != nil {
		return "", layout.AttributeNone, err
	}
	if a == layout.AttributeNone {
		return "", layout.AttributeNone, fmt.Errorf("config: reference %q has no attribute", ref)
	}
	return name, a, nil
}

// Load reads and validates the description at path.
func Load(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: file too large: %d bytes (max %d)", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a description. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks field constraints and that every reference resolves.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	names := map[string]bool{SuperName: true}
	claim := func(name string) error {
		if names[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		names[name] = true
		return nil
	}
	for _, w := range f.Widgets {
		if err := claim(w.Name); err != nil {
			return err
		}
	}
	for _, g := range f.Guides {
		if err := claim(g.Name); err != nil {
			return err
		}
	}

	for i, c := range f.Constraints {
		refs := []string{c.Target}
		if c.Source != "" {
			refs = append(refs, c.Source)
		}
		for _, ref := range refs {
			name, _, _ := splitReference(ref)
			if !names[name] {
				return fmt.Errorf("%w: constraint %d refers to %q", ErrUnknownReference, i, name)
			}
		}
	}
	return nil
}
