package form

// Checkbox is a single checkbox. It submits the checked value when checked
// and reports the unchecked value otherwise.
type Checkbox struct {
	BaseElement
	checkedValue   string
	uncheckedValue string
}

// NewCheckbox creates a checkbox with the values "1" and "0".
func NewCheckbox(name string, opts ...Option) (*Checkbox, error) {
	c := &Checkbox{checkedValue: "1", uncheckedValue: "0"}
	c.initCheckbox(name)
	if err := apply(c, opts); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Checkbox) initCheckbox(name string) {
	c.Init(c, "input", name)
	if err := c.SetAttribute("type", "checkbox"); err != nil {
		panic(err)
	}
	mustRegister(c.Attributes(), "value",
		func(o any) any { return o.(*Checkbox).checkedValue },
		func(o any, v any) error {
			o.(*Checkbox).checkedValue = toString(v)
			return nil
		},
	)
	mustRegister(c.Attributes(), "checked",
		func(o any) any { return o.(*Checkbox).IsChecked() },
		func(o any, v any) error {
			o.(*Checkbox).SetChecked(truthy(v))
			return nil
		},
	)
	c.registerRequired()
}

// IsChecked reports whether the checkbox is checked.
func (c *Checkbox) IsChecked() bool {
	v, ok := c.value.(string)
	return ok && v == c.checkedValue
}

// SetChecked checks or unchecks the checkbox.
func (c *Checkbox) SetChecked(checked bool) {
	if checked {
		c.value = c.checkedValue
	} else {
		c.value = c.uncheckedValue
	}
}

// CheckedValue returns the value submitted when checked.
func (c *Checkbox) CheckedValue() string { return c.checkedValue }

// UncheckedValue returns the value reported when unchecked.
func (c *Checkbox) UncheckedValue() string { return c.uncheckedValue }

// Value returns the checked or unchecked value.
func (c *Checkbox) Value() any {
	if c.IsChecked() {
		return c.checkedValue
	}
	return c.uncheckedValue
}

// SetValue checks the checkbox if value is true or equals the checked
// value.
func (c *Checkbox) SetValue(value any) error {
	switch v := value.(type) {
	case nil:
		c.SetChecked(false)
	case bool:
		c.SetChecked(v)
	case map[string]any:
		return invalidValue(c, value)
	default:
		c.SetChecked(toString(v) == c.checkedValue)
	}
	return nil
}

// Validate requires the checkbox to be checked if it is required.
func (c *Checkbox) Validate() bool {
	if c.required && !c.IsChecked() {
		c.validated = true
		c.messages = []string{requiredMessage}
		return false
	}
	return c.BaseElement.Validate()
}

// CloneElement implements Element.
func (c *Checkbox) CloneElement() Element {
	cp := &Checkbox{checkedValue: c.checkedValue, uncheckedValue: c.uncheckedValue}
	cp.BaseElement = c.copyBase(cp)
	return decorateCopy(cp)
}
