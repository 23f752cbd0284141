package form

import (
	"fmt"
	"sort"

	"github.com/vango-dev/htmlkit/pkg/html"
)

// Choice is one option of a select or radio group.
type Choice struct {
	Value    string
	Label    string
	Disabled bool
	// Group renders the choice inside an <optgroup> of that label.
	Group string
}

// Choices creates choices labelled with their values.
func Choices(values ...string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: v, Label: v}
	}
	return out
}

// ChoiceMap creates choices from value to label, ordered by value.
func ChoiceMap(m map[string]string) []Choice {
	values := make([]string, 0, len(m))
	for v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: v, Label: m[v]}
	}
	return out
}

// InGroup puts choices into an option group.
func InGroup(group string, choices ...Choice) []Choice {
	out := make([]Choice, len(choices))
	for i, c := range choices {
		c.Group = group
		out[i] = c
	}
	return out
}

type choiceList struct {
	choices []Choice
}

// AddChoices appends choices.
func (l *choiceList) AddChoices(choices ...Choice) {
	for _, c := range choices {
		if c.Label == "" {
			c.Label = c.Value
		}
		l.choices = append(l.choices, c)
	}
}

// Choices returns the choices.
func (l *choiceList) Choices() []Choice { return append([]Choice(nil), l.choices...) }

// checkChoices returns a message for the first value that is not an enabled
// choice.
func (l *choiceList) checkChoices(values []string) string {
	allowed := make(map[string]bool, len(l.choices))
	for _, c := range l.choices {
		if !c.Disabled {
			allowed[c.Value] = true
		}
	}
	for _, v := range values {
		if v != "" && !allowed[v] {
			return fmt.Sprintf("%q is not a valid choice", v)
		}
	}
	return ""
}

func selected(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Select is a <select> element.
type Select struct {
	BaseElement
	choiceList
}

// NewSelect creates a select.
func NewSelect(name string, opts ...Option) (*Select, error) {
	s := &Select{}
	s.initSelect(name)
	if err := apply(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Select) initSelect(name string) {
	s.Init(s, "select", name)
	s.registerRequired()
	mustRegister(s.Attributes(), "multiple",
		func(o any) any { return o.(*Select).multiple },
		func(o any, v any) error {
			o.(*Select).SetMultiple(truthy(v))
			return nil
		},
	)
	s.SetContent(&selectOptions{s: s})
}

// SetMultiple allows several selected values. The name gets a [] suffix.
func (s *Select) SetMultiple(multiple bool) {
	s.multiple = multiple
	if v, ok := s.value.(string); ok && multiple {
		s.value = []string{v}
	}
}

// IsMultiple reports whether several values may be selected.
func (s *Select) IsMultiple() bool { return s.multiple }

// SetValue selects value. A multiple select takes a list.
func (s *Select) SetValue(value any) error {
	values, ok := toStrings(value)
	if !ok {
		return invalidValue(s, value)
	}
	switch {
	case s.multiple:
		s.value = values
	case len(values) == 0:
		s.value = nil
	default:
		s.value = values[0]
	}
	return nil
}

func (s *Select) selectedValues() []string {
	values, _ := toStrings(s.value)
	return values
}

// Validate also checks that every selected value is an enabled choice.
func (s *Select) Validate() bool {
	ok := s.BaseElement.Validate()
	if msg := s.checkChoices(s.selectedValues()); msg != "" {
		s.messages = append(s.messages, msg)
		ok = false
	}
	return ok
}

// CloneElement implements Element.
func (s *Select) CloneElement() Element {
	c := &Select{choiceList: choiceList{choices: s.Choices()}}
	c.BaseElement = s.copyBase(c)
	c.SetContent(&selectOptions{s: c})
	return decorateCopy(c)
}

// selectOptions renders the options of s from its current state.
type selectOptions struct {
	s *Select
}

func (o *selectOptions) RenderHTML(rc *html.RenderContext) (string, error) {
	values := o.s.selectedValues()
	doc := html.NewDocument()
	groups := make(map[string]*html.Element)
	for _, c := range o.s.choices {
		opt, err := optionTag(c, selected(values, c.Value))
		if err != nil {
			return "", err
		}
		if c.Group == "" {
			doc.Add(opt)
			continue
		}
		g, ok := groups[c.Group]
		if !ok {
			g = html.Tag("optgroup", html.Attrs{"label": c.Group})
			groups[c.Group] = g
			doc.Add(g)
		}
		g.Add(opt)
	}
	return doc.RenderHTML(rc)
}

func optionTag(c Choice, isSelected bool) (*html.Element, error) {
	opt := html.Tag("option", c.Label)
	for _, attr := range []struct {
		name  string
		value any
	}{
		{"value", c.Value},
		{"selected", isSelected},
		{"disabled", c.Disabled},
	} {
		if err := opt.SetAttribute(attr.name, attr.value); err != nil {
			return nil, err
		}
	}
	return opt, nil
}

// Radio is a group of radio inputs sharing one name, rendered inside a div.
type Radio struct {
	BaseElement
	choiceList
}

// NewRadio creates a radio group.
func NewRadio(name string, opts ...Option) (*Radio, error) {
	r := &Radio{}
	r.initElement(r, "div", name)
	r.SetContent(&radioInputs{r: r})
	if err := apply(r, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// SetValue selects one choice.
func (r *Radio) SetValue(value any) error {
	values, ok := toStrings(value)
	if !ok {
		return invalidValue(r, value)
	}
	if len(values) == 0 {
		r.value = nil
		return nil
	}
	r.value = values[0]
	return nil
}

// Validate also checks that the value is an enabled choice.
func (r *Radio) Validate() bool {
	ok := r.BaseElement.Validate()
	if msg := r.checkChoices([]string{toString(r.value)}); msg != "" {
		r.messages = append(r.messages, msg)
		ok = false
	}
	return ok
}

// CloneElement implements Element.
func (r *Radio) CloneElement() Element {
	c := &Radio{choiceList: choiceList{choices: r.Choices()}}
	c.BaseElement = r.copyBase(c)
	c.SetContent(&radioInputs{r: c})
	return decorateCopy(c)
}

type radioInputs struct {
	r *Radio
}

func (ri *radioInputs) RenderHTML(rc *html.RenderContext) (string, error) {
	current := toString(ri.r.value)
	name := ri.r.FullName()
	doc := html.NewDocument()
	for _, c := range ri.r.choices {
		input := html.Tag("input")
		for _, attr := range []struct {
			name  string
			value any
		}{
			{"type", "radio"},
			{"name", name},
			{"value", c.Value},
			{"checked", current != "" && current == c.Value},
			{"disabled", c.Disabled},
		} {
			if err := input.SetAttribute(attr.name, attr.value); err != nil {
				return "", err
			}
		}
		doc.Add(html.Tag("label", input, c.Label))
	}
	return doc.RenderHTML(rc)
}
