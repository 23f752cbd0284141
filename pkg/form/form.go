package form

import (
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// maxMemory is the multipart memory limit of HandleRequest.
const maxMemory = 32 << 20

// Form is a <form> element holding named form elements.
type Form struct {
	html.Element
	container

	submitted bool
	onSuccess []func(*Form) error
	onError   []func(*Form) error
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithName sets the name attribute of the form.
func WithName(name string) FormOption {
	return func(f *Form) { f.mustSet("name", name) }
}

// WithAction sets the action attribute.
func WithAction(action string) FormOption {
	return func(f *Form) { f.mustSet("action", action) }
}

// WithMethod sets the method attribute. Defaults to post.
func WithMethod(method string) FormOption {
	return func(f *Form) { f.mustSet("method", strings.ToLower(method)) }
}

// WithFormAttributes merges attributes into the form tag. It panics on
// invalid attribute names like html.Tag does.
func WithFormAttributes(attrs html.Attrs) FormOption {
	return func(f *Form) {
		if err := f.AddAttributes(attrs); err != nil {
			panic(err)
		}
	}
}

// WithFactories sets the element registry used by AddElement.
func WithFactories(r *Registry) FormOption {
	return func(f *Form) { f.factories = r }
}

// WithLoader sets the decorator loader used by SetDefaultDecorators.
func WithLoader(l *decorator.Loader) FormOption {
	return func(f *Form) { f.loader = l }
}

// WithFormLogger sets the logger. Defaults to slog.Default().
func WithFormLogger(logger *slog.Logger) FormOption {
	return func(f *Form) { f.logger = logger }
}

// WithObserver sets the observer of every decorator chain of the form.
func WithObserver(o decorator.Observer) FormOption {
	return func(f *Form) { f.observer = o }
}

// New creates an empty form.
func New(opts ...FormOption) *Form {
	f := &Form{}
	f.Init(f, "form")
	f.initContainer(f.Doc(), nil)
	for _, opt := range opts {
		opt(f)
	}
	if !f.Attributes().Has("method") {
		f.mustSet("method", "post")
	}
	return f
}

func (f *Form) mustSet(name string, value any) {
	if err := f.SetAttribute(name, value); err != nil {
		panic(err)
	}
}

// Name returns the name attribute.
func (f *Form) Name() string { return f.Attr("name") }

// Action returns the action attribute.
func (f *Form) Action() string { return f.Attr("action") }

// SetAction sets the action attribute.
func (f *Form) SetAction(action string) { f.mustSet("action", action) }

// Method returns the method attribute.
func (f *Form) Method() string { return f.Attr("method") }

// SetMethod sets the method attribute.
func (f *Form) SetMethod(method string) { f.mustSet("method", strings.ToLower(method)) }

// SetLogger sets the logger.
func (f *Form) SetLogger(logger *slog.Logger) { f.logger = logger }

// Value returns the value of the element registered under name, or nil.
func (f *Form) Value(name string) any {
	el, ok := f.elements[name]
	if !ok {
		return nil
	}
	return el.Value()
}

// PopulateURLValues populates the form from request values, nesting
// bracketed names.
func (f *Form) PopulateURLValues(values url.Values) error {
	return f.Populate(NestValues(values))
}

// Validate validates every element.
func (f *Form) Validate() bool {
	valid := f.validate()
	f.log().Debug("validated form", logging.FieldForm, f.Name(), logging.FieldValid, valid)
	return valid
}

// IsValid reports whether all elements are valid.
func (f *Form) IsValid() bool { return f.isValid() }

// OnSuccess registers a callback run by HandleRequest for valid submissions.
func (f *Form) OnSuccess(fn func(*Form) error) { f.onSuccess = append(f.onSuccess, fn) }

// OnError registers a callback run by HandleRequest for invalid submissions.
func (f *Form) OnError(fn func(*Form) error) { f.onError = append(f.onError, fn) }

// HasBeenSubmitted reports whether HandleRequest received a submission.
func (f *Form) HasBeenSubmitted() bool { return f.submitted }

// HandleRequest populates and validates the form from a POST, PUT or PATCH
// request body and runs the callbacks. Other methods are ignored.
func (f *Form) HandleRequest(r *http.Request) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil
	}

	var err error
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return herrors.New("F008").WithDetailf("%s %s", r.Method, r.URL.Path).Wrap(err)
	}

	f.submitted = true
	if err := f.PopulateURLValues(r.PostForm); err != nil {
		return err
	}
	f.log().Debug("form submitted",
		logging.FieldForm, f.Name(),
		logging.FieldMethod, r.Method,
		logging.FieldPath, r.URL.Path,
	)

	callbacks := f.onError
	if f.Validate() {
		callbacks = f.onSuccess
	}
	for _, fn := range callbacks {
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

type clicker interface {
	Clicked() bool
}

// SubmitButton returns the submit element used to submit the form, or nil.
func (f *Form) SubmitButton() Element {
	for _, el := range f.Elements() {
		if c, ok := el.(clicker); ok && c.Clicked() {
			return el
		}
	}
	return nil
}
