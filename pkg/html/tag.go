package html

import "fmt"

// Tag creates an element. Arguments may be Attrs, *Attributes, *Attribute,
// Node, string (escaped text) or []Node. It panics on invalid attribute names
// or unsupported argument types, the same way regexp.MustCompile does.
func Tag(tag string, args ...any) *Element {
	e, err := TagE(tag, args...)
	if err != nil {
		panic(err)
	}
	return e
}

// TagE is like Tag but returns the error.
func TagE(tag string, args ...any) (*Element, error) {
	e := NewElement(tag)
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attrs:
			if err := e.AddAttributes(v); err != nil {
				return nil, err
			}
		case map[string]any:
			if err := e.AddAttributes(Attrs(v)); err != nil {
				return nil, err
			}
		case *Attributes:
			if err := e.Attributes().Merge(v); err != nil {
				return nil, err
			}
		case *Attribute:
			if err := e.Attributes().SetAttribute(v); err != nil {
				return nil, err
			}
		case Node:
			e.Add(v)
		case []Node:
			e.Add(v...)
		case string:
			e.Add(Text(v))
		default:
			return nil, fmt.Errorf("html: unsupported argument %T for <%s>", arg, tag)
		}
	}
	return e, nil
}
