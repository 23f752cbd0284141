// Package formdef loads form definitions from YAML.
//
//	name: contact
//	action: /contact
//	decorators: [Label, {HtmlTag: {class: field}}, Errors]
//	elements:
//	  - {type: email, name: email, label: E-Mail, required: true}
//	  - type: fieldset
//	    name: address
//	    elements:
//	      - {type: text, name: city, validators: [minlength=2]}
//
// Errors carry the line and column of the offending node.
package formdef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Definition is a parsed form definition.
type Definition struct {
	Name       string            `yaml:"name"`
	Action     string            `yaml:"action"`
	Method     string            `yaml:"method"`
	Attributes map[string]any    `yaml:"attributes"`
	Decorators []any             `yaml:"decorators"`
	Elements   []ElementDef      `yaml:"elements"`
	Meta       map[string]string `yaml:"meta"`

	// Source is the file the definition was loaded from, if any.
	Source string `yaml:"-"`

	pos position
}

// ElementDef defines one element.
type ElementDef struct {
	Type                string         `yaml:"type"`
	Name                string         `yaml:"name"`
	Label               string         `yaml:"label"`
	Description         string         `yaml:"description"`
	DescriptionMarkdown string         `yaml:"description_markdown"`
	Value               any            `yaml:"value"`
	Required            bool           `yaml:"required"`
	Ignored             bool           `yaml:"ignored"`
	Multiple            bool           `yaml:"multiple"`
	Placeholder         string         `yaml:"placeholder"`
	ID                  string         `yaml:"id"`
	Attributes          map[string]any `yaml:"attributes"`
	Options             []ChoiceDef    `yaml:"options"`
	Validators          []string       `yaml:"validators"`
	Decorators          []any          `yaml:"decorators"`
	Elements            []ElementDef   `yaml:"elements"`

	pos position
}

// ChoiceDef is an option of a select or radio element. It is written either
// as a plain value or as a mapping with value, label, disabled and group.
type ChoiceDef struct {
	Value    string `yaml:"value"`
	Label    string `yaml:"label"`
	Disabled bool   `yaml:"disabled"`
	Group    string `yaml:"group"`
}

type position struct {
	line, column int
}

func posOf(n *yaml.Node) position { return position{line: n.Line, column: n.Column} }

// Line returns the line of the definition in its source.
func (e *ElementDef) Line() int { return e.pos.line }

var (
	definitionKeys = keySet(Definition{})
	elementKeys    = keySet(ElementDef{})
	choiceKeys     = keySet(ChoiceDef{})
)

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Definition) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "form definition", definitionKeys); err != nil {
		return err
	}
	type plain Definition
	if err := n.Decode((*plain)(d)); err != nil {
		return err
	}
	d.pos = posOf(n)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *ElementDef) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, "element", elementKeys); err != nil {
		return err
	}
	type plain ElementDef
	if err := n.Decode((*plain)(e)); err != nil {
		return err
	}
	e.pos = posOf(n)
	switch {
	case e.Type == "":
		return nodeError(n, "element without type")
	case e.Name == "":
		return nodeError(n, fmt.Sprintf("%s element without name", e.Type))
	case len(e.Elements) > 0 && !strings.EqualFold(e.Type, "fieldset"):
		return nodeError(n, fmt.Sprintf("only fieldsets have elements, %q is a %s", e.Name, e.Type))
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *ChoiceDef) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		c.Value, c.Label = n.Value, n.Value
		return nil
	}
	if err := checkKeys(n, "option", choiceKeys); err != nil {
		return err
	}
	type plain ChoiceDef
	if err := n.Decode((*plain)(c)); err != nil {
		return err
	}
	if c.Label == "" {
		c.Label = c.Value
	}
	return nil
}

// nodeErr is an error at a YAML node. Parse turns it into an *errors.Error
// with a location.
type nodeErr struct {
	pos position
	msg string
}

func (e *nodeErr) Error() string { return fmt.Sprintf("line %d: %s", e.pos.line, e.msg) }

func nodeError(n *yaml.Node, msg string) error {
	return &nodeErr{pos: posOf(n), msg: msg}
}

func checkKeys(n *yaml.Node, what string, known map[string]bool) error {
	if n.Kind != yaml.MappingNode {
		return nodeError(n, fmt.Sprintf("%s must be a mapping", what))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !known[key.Value] {
			return nodeError(key, fmt.Sprintf("unknown %s key %q", what, key.Value))
		}
	}
	return nil
}

// Parse parses a definition.
func Parse(data []byte) (*Definition, error) {
	return parse(data, "")
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, herrors.New("F004").WithDetailf("read %s", path).Wrap(err)
	}
	return parse(data, path)
}

// LoadAll loads every file and indexes the definitions by name. Directories
// are searched for *.yaml and *.yml files.
func LoadAll(paths ...string) (map[string]*Definition, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, herrors.New("F004").WithDetailf("read %s", p).Wrap(err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		}
	}
	sort.Strings(files)

	defs := make(map[string]*Definition, len(files))
	for _, file := range files {
		def, err := Load(file)
		if err != nil {
			return nil, err
		}
		if prev, ok := defs[def.Name]; ok {
			return nil, herrors.New("F004").
				WithDetailf("form %q defined in %s and %s", def.Name, prev.Source, file).
				WithLocation(file, def.pos.line, def.pos.column)
		}
		defs[def.Name] = def
	}
	return defs, nil
}

func parse(data []byte, source string) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, locate(herrors.New("F004").WithDetail("empty definition"), source, position{})
		}
		return nil, definitionError(err, source)
	}
	def.Source = source
	if def.Name == "" {
		return nil, locate(herrors.New("F004").WithDetail("form without name"), source, def.pos)
	}
	return &def, nil
}

func definitionError(err error, source string) error {
	var ne *nodeErr
	if errors.As(err, &ne) {
		return locate(herrors.New("F004").WithDetail(ne.msg), source, ne.pos)
	}
	return locate(herrors.New("F004").WithDetail(err.Error()).Wrap(err), source, position{})
}

// locate attaches pos to err. Context lines are read when source is a file.
func locate(err *herrors.Error, source string, pos position) *herrors.Error {
	if pos.line == 0 && source == "" {
		return err
	}
	if source != "" {
		return err.WithLocation(source, pos.line, pos.column)
	}
	err.Location = &herrors.Location{Line: pos.line, Column: pos.column}
	return err
}

func keySet(v any) map[string]bool {
	keys := make(map[string]bool)
	for _, k := range yamlKeys(v) {
		keys[k] = true
	}
	return keys
}

func yamlKeys(v any) []string {
	t := reflect.TypeOf(v)
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys = append(keys, name)
		}
	}
	return keys
}
