package formdef

import (
	"errors"
	"log/slog"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/form"
	"github.com/vango-dev/htmlkit/pkg/html"
	"github.com/vango-dev/htmlkit/pkg/markdown"
)

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	elements *form.Registry
	loader   *decorator.Loader
	observer decorator.Observer
	logger   *slog.Logger
	markdown []markdown.Option
}

// WithElements sets the element registry. Defaults to form.DefaultRegistry().
func WithElements(r *form.Registry) BuildOption {
	return func(c *buildConfig) { c.elements = r }
}

// WithDecorators sets the decorator loader. Defaults to
// decorator.DefaultLoader().
func WithDecorators(l *decorator.Loader) BuildOption {
	return func(c *buildConfig) { c.loader = l }
}

// WithObserver sets the observer of the decorator chains.
func WithObserver(o decorator.Observer) BuildOption {
	return func(c *buildConfig) { c.observer = o }
}

// WithLogger sets the logger of the form.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) { c.logger = logger }
}

// WithMarkdown sets the options for description_markdown.
func WithMarkdown(opts ...markdown.Option) BuildOption {
	return func(c *buildConfig) { c.markdown = opts }
}

// adder is implemented by Form and Fieldset.
type adder interface {
	AddElement(typ, name string, opts ...form.Option) (form.Element, error)
}

// Build creates a new form from the definition. Every call returns a fresh
// form.
func (d *Definition) Build(opts ...BuildOption) (*form.Form, error) {
	cfg := buildConfig{elements: form.DefaultRegistry(), loader: decorator.DefaultLoader()}
	for _, opt := range opts {
		opt(&cfg)
	}

	formOpts := []form.FormOption{
		form.WithName(d.Name),
		form.WithFactories(cfg.elements),
		form.WithLoader(cfg.loader),
	}
	if d.Action != "" {
		formOpts = append(formOpts, form.WithAction(d.Action))
	}
	if d.Method != "" {
		formOpts = append(formOpts, form.WithMethod(d.Method))
	}
	if cfg.observer != nil {
		formOpts = append(formOpts, form.WithObserver(cfg.observer))
	}
	if cfg.logger != nil {
		formOpts = append(formOpts, form.WithFormLogger(cfg.logger))
	}
	f := form.New(formOpts...)
	if len(d.Attributes) > 0 {
		if err := f.AddAttributes(html.Attrs(d.Attributes)); err != nil {
			return nil, d.fail(err, d.pos)
		}
	}
	if len(d.Decorators) > 0 {
		if err := f.SetDefaultDecorators(d.Decorators...); err != nil {
			return nil, d.fail(err, d.pos)
		}
	}
	if err := d.addElements(f, d.Elements, &cfg); err != nil {
		return nil, err
	}

	logging.OrDefault(cfg.logger).Debug("built form",
		logging.FieldForm, d.Name,
		logging.FieldPath, d.Source,
	)
	return f, nil
}

func (d *Definition) addElements(parent adder, defs []ElementDef, cfg *buildConfig) error {
	for i := range defs {
		ed := &defs[i]
		opts, err := ed.options(cfg)
		if err != nil {
			return d.fail(err, ed.pos)
		}
		el, err := parent.AddElement(ed.Type, ed.Name, opts...)
		if err != nil {
			return d.fail(err, ed.pos)
		}
		if len(ed.Elements) == 0 {
			continue
		}
		fs, ok := el.(adder)
		if !ok {
			return d.fail(herrors.New("F004").WithDetailf("%s %q cannot hold elements", ed.Type, ed.Name), ed.pos)
		}
		if err := d.addElements(fs, ed.Elements, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (ed *ElementDef) options(cfg *buildConfig) ([]form.Option, error) {
	var opts []form.Option
	if ed.Label != "" {
		opts = append(opts, form.WithLabel(ed.Label))
	}
	if ed.Description != "" {
		opts = append(opts, form.WithDescription(ed.Description))
	}
	if ed.DescriptionMarkdown != "" {
		opts = append(opts, form.WithDescriptionNode(markdown.New(ed.DescriptionMarkdown, cfg.markdown...)))
	}
	if ed.Required {
		opts = append(opts, form.WithRequired(true))
	}
	if ed.Ignored {
		opts = append(opts, form.WithIgnored(true))
	}
	if ed.ID != "" {
		opts = append(opts, form.WithID(ed.ID))
	}
	if ed.Placeholder != "" {
		opts = append(opts, form.WithPlaceholder(ed.Placeholder))
	}
	if len(ed.Attributes) > 0 {
		opts = append(opts, form.WithAttributes(html.Attrs(ed.Attributes)))
	}
	if len(ed.Options) > 0 {
		choices := make([]form.Choice, len(ed.Options))
		for i, c := range ed.Options {
			choices[i] = form.Choice{Value: c.Value, Label: c.Label, Disabled: c.Disabled, Group: c.Group}
		}
		opts = append(opts, form.WithOptions(choices...))
	}
	if ed.Multiple {
		opts = append(opts, form.WithMultiple(true))
	}
	if len(ed.Validators) > 0 {
		validators := make([]form.Validator, 0, len(ed.Validators))
		for _, spec := range ed.Validators {
			v, err := form.ParseValidator(spec)
			if err != nil {
				return nil, err
			}
			validators = append(validators, v)
		}
		opts = append(opts, form.WithValidators(validators...))
	}
	if ed.Decorators != nil {
		chain := decorator.NewChain(decorator.WithLoader(cfg.loader))
		if err := chain.AddDecorators(ed.Decorators...); err != nil {
			return nil, err
		}
		opts = append(opts, func(el form.Element) error {
			el.SetDecorators(chain)
			return nil
		})
	}
	if ed.Value != nil {
		opts = append(opts, form.WithValue(ed.Value))
	}
	return opts, nil
}

// fail attaches the position of the failing node to err.
func (d *Definition) fail(err error, pos position) error {
	var he *herrors.Error
	if !errors.As(err, &he) {
		return locate(herrors.New("F004").WithDetail(err.Error()).Wrap(err), d.Source, pos)
	}
	if he.Location == nil {
		locate(he, d.Source, pos)
	}
	return err
}
