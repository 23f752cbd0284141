// Package decorator composes markup around form elements.
//
// A Chain is an ordered list of named decorators. Applying it to an
// element fills a Result through three operations: Append, Prepend and
// Wrap. Wrap encloses everything accumulated so far, so the order of the
// chain alone determines nesting:
//
//	chain := decorator.NewChain()
//	_ = chain.AddDecorators("Label", decorator.Spec{
//	    Name:    "HtmlTag",
//	    Options: decorator.Options{"class": "field"},
//	}, "Description")
//
// renders the label and the element inside <div class="field"> and the
// description after it.
//
// The chain starts with the element already in the result unless it
// contains a RenderElement decorator, which then decides where the element
// goes.
//
// Decorators may ask for later decorators to be skipped. Asking to skip a
// decorator that already ran fails with a logic error (D004).
//
// Decorators are resolved by name through a Loader, which searches its
// registries in order. DefaultRegistry holds RenderElement, Label,
// Description, Errors, HtmlTag and Fieldset.
package decorator
