package html

import (
	"sort"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Attrs is a convenience map for constructing elements. Keys are applied in
// sorted order.
type Attrs map[string]any

// Getter returns the value of a callback-backed attribute for owner.
type Getter func(owner any) any

// Setter stores the value of a callback-backed attribute on owner.
type Setter func(owner any, value any) error

type callback struct {
	get Getter
	set Setter
}

// Attributes is an ordered attribute store. Names registered with
// RegisterCallback are backed by the owner's own state instead of the map.
type Attributes struct {
	order     []string
	attrs     map[string]*Attribute
	cbOrder   []string
	callbacks map[string]callback
	owner     any
}

// NewAttributes creates an empty store.
func NewAttributes() *Attributes {
	return &Attributes{
		attrs:     make(map[string]*Attribute),
		callbacks: make(map[string]callback),
	}
}

// AttributesFrom creates a store from a map.
func AttributesFrom(m Attrs) (*Attributes, error) {
	a := NewAttributes()
	if err := a.SetMap(m); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Attributes) init() {
	if a.attrs == nil {
		a.attrs = make(map[string]*Attribute)
	}
	if a.callbacks == nil {
		a.callbacks = make(map[string]callback)
	}
}

// Owner returns the value passed to callbacks.
func (a *Attributes) Owner() any { return a.owner }

// Rebind makes callbacks resolve against owner from now on.
func (a *Attributes) Rebind(owner any) {
	a.owner = owner
}

// RegisterCallback backs name by getter and setter. Either may be nil; a
// callback without setter makes the attribute read-only.
func (a *Attributes) RegisterCallback(name string, getter Getter, setter Setter) error {
	if !IsValidAttributeName(name) {
		return herrors.New("H001").WithDetailf("%q", name)
	}
	a.init()
	if _, ok := a.callbacks[name]; !ok {
		a.cbOrder = append(a.cbOrder, name)
	}
	a.callbacks[name] = callback{get: getter, set: setter}
	return nil
}

// HasCallback reports whether name is callback-backed.
func (a *Attributes) HasCallback(name string) bool {
	_, ok := a.callbacks[name]
	return ok
}

// Get returns the attribute, creating an empty one if absent. For
// callback-backed names a fresh attribute holding the getter's value is
// returned.
func (a *Attributes) Get(name string) (*Attribute, error) {
	a.init()
	if cb, ok := a.callbacks[name]; ok {
		var value any
		if cb.get != nil {
			value = cb.get(a.owner)
		}
		return NewAttribute(name, value)
	}
	if attr, ok := a.attrs[name]; ok {
		return attr, nil
	}
	attr, err := NewAttribute(name, nil)
	if err != nil {
		return nil, err
	}
	a.attrs[name] = attr
	a.order = append(a.order, name)
	return attr, nil
}

// Value returns the value of name, or nil.
func (a *Attributes) Value(name string) any {
	if cb, ok := a.callbacks[name]; ok {
		if cb.get == nil {
			return nil
		}
		return normalizeValue(cb.get(a.owner))
	}
	if attr, ok := a.attrs[name]; ok {
		return attr.Value()
	}
	return nil
}

// String returns the value of name as a string.
func (a *Attributes) String(name string) string {
	if attr, ok := a.attrs[name]; ok && !a.HasCallback(name) {
		return attr.String()
	}
	return valueString(a.Value(name))
}

// Has reports whether name is set or callback-backed.
func (a *Attributes) Has(name string) bool {
	if _, ok := a.callbacks[name]; ok {
		return true
	}
	_, ok := a.attrs[name]
	return ok
}

// Set overwrites the value of name.
func (a *Attributes) Set(name string, value any) error {
	if cb, ok := a.callbacks[name]; ok {
		return a.callSetter(name, cb, value)
	}
	if attr, ok := value.(*Attribute); ok {
		return a.SetAttribute(attr)
	}
	attr, err := a.Get(name)
	if err != nil {
		return err
	}
	attr.SetValue(value)
	return nil
}

// SetAttribute stores attr under its own name, replacing any previous one.
func (a *Attributes) SetAttribute(attr *Attribute) error {
	a.init()
	name := attr.Name()
	if cb, ok := a.callbacks[name]; ok {
		return a.callSetter(name, cb, attr.Value())
	}
	if existing, ok := a.attrs[name]; ok && existing.IsImmutable() {
		return nil
	}
	if _, ok := a.attrs[name]; !ok {
		a.order = append(a.order, name)
	}
	a.attrs[name] = attr
	return nil
}

// Add merges value into name using the attribute's separator.
func (a *Attributes) Add(name string, value any) error {
	if cb, ok := a.callbacks[name]; ok {
		return a.callSetter(name, cb, value)
	}
	attr, err := a.Get(name)
	if err != nil {
		return err
	}
	attr.AddValue(value)
	return nil
}

func (a *Attributes) callSetter(name string, cb callback, value any) error {
	if cb.set == nil {
		return herrors.New("H006").WithDetailf("%q", name)
	}
	return cb.set(a.owner, normalizeValue(value))
}

// SetMap sets every entry of m in sorted key order.
func (a *Attributes) SetMap(m Attrs) error {
	for _, name := range sortedKeys(m) {
		if err := a.Set(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// AddMap adds every entry of m in sorted key order.
func (a *Attributes) AddMap(m Attrs) error {
	for _, name := range sortedKeys(m) {
		if err := a.Add(name, m[name]); err != nil {
			return err
		}
	}
	return nil
}

// Merge adds all attributes of other. Callback-backed attributes of other
// are added by value.
func (a *Attributes) Merge(other *Attributes) error {
	if other == nil {
		return nil
	}
	for _, name := range other.order {
		if err := a.Add(name, other.attrs[name].Value()); err != nil {
			return err
		}
	}
	for _, name := range other.cbOrder {
		if v := other.Value(name); v != nil {
			if err := a.Add(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Remove drops name entirely, or only the given values when present.
func (a *Attributes) Remove(name string, values ...any) {
	attr, ok := a.attrs[name]
	if !ok {
		return
	}
	if len(values) == 0 {
		if attr.IsImmutable() {
			return
		}
		delete(a.attrs, name)
		for i, n := range a.order {
			if n == name {
				a.order = append(a.order[:i], a.order[i+1:]...)
				break
			}
		}
		return
	}
	for _, v := range values {
		attr.RemoveValue(v)
	}
}

// Names returns attribute names in render order.
func (a *Attributes) Names() []string {
	names := make([]string, 0, len(a.order)+len(a.cbOrder))
	names = append(names, a.order...)
	for _, name := range a.cbOrder {
		if _, ok := a.attrs[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}

// Len returns the number of attributes, including callback-backed ones.
func (a *Attributes) Len() int {
	return len(a.Names())
}

// Clone returns a deep copy. Callbacks are shared and keep resolving against
// the current owner until Rebind is called on the copy.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		order:     append([]string(nil), a.order...),
		attrs:     make(map[string]*Attribute, len(a.attrs)),
		cbOrder:   append([]string(nil), a.cbOrder...),
		callbacks: make(map[string]callback, len(a.callbacks)),
		owner:     a.owner,
	}
	for name, attr := range a.attrs {
		c.attrs[name] = attr.clone()
	}
	for name, cb := range a.callbacks {
		c.callbacks[name] = cb
	}
	return c
}

// Render returns ` name="value"` fragments: plain attributes in insertion
// order followed by callback-backed ones in registration order.
func (a *Attributes) Render() string {
	var b strings.Builder
	for _, name := range a.order {
		if a.HasCallback(name) {
			continue
		}
		if s := a.attrs[name].Render(); s != "" {
			b.WriteByte(' ')
			b.WriteString(s)
		}
	}
	for _, name := range a.cbOrder {
		cb := a.callbacks[name]
		if cb.get == nil {
			continue
		}
		attr := &Attribute{name: name, separator: " ", value: normalizeValue(cb.get(a.owner))}
		if s := attr.Render(); s != "" {
			b.WriteByte(' ')
			b.WriteString(s)
		}
	}
	return b.String()
}

func sortedKeys(m Attrs) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
