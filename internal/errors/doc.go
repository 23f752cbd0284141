// Package errors provides the structured error type used across htmlkit.
//
// Every error raised by the core tree, the decorator chain and the form
// layer is an *Error carrying a registered code and a Kind:
//
//   - invalid_argument: malformed attribute names, decorator specifications,
//     unsupported decorator options, unknown element or decorator names
//   - not_found: a referenced sibling or element does not exist (also
//     matches invalid_argument)
//   - logic: a decorator skips one that already ran, a frozen chain is mutated
//   - render: missing tag, content in a void element, wrapper loops
//   - config, cli: configuration files and command line usage
//
// Callers test kinds with the standard library:
//
//	if errors.Is(err, herrors.ErrNotFound) { ... }
//
// # Usage
//
//	err := errors.New("H002").
//	    WithDetail(`no child "submit" in <form>`).
//	    WithSuggestion("Add the sibling before inserting relative to it")
//
//	fmt.Println(err.Format())
package errors
