// Package form provides server-side HTML forms built on package html.
//
// A Form is a <form> element holding named elements in registration order.
// Elements are created through a type registry or constructed directly:
//
//	f := form.New(form.WithAction("/contact"))
//	f.SetDefaultDecorators("Label", map[string]any{"HtmlTag": map[string]any{"class": "field"}}, "Errors")
//	f.AddElement("email", "email", form.WithLabel("E-Mail"), form.WithRequired(true))
//	f.AddElement("submit", "send", form.WithLabel("Send"))
//
//	if err := f.HandleRequest(r); err != nil { ... }
//	out := html.String(f)
//
// Fieldsets nest their children's names: an element "city" inside the
// fieldset "address" renders as name="address[city]". The name is computed
// at render time, so elements may be added in any order.
//
// Validation failure is state, not an error: Validate records messages on
// the elements, which the Errors decorator renders.
package form
