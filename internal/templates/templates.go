package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/htmlkit/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project, used as page title.
	ProjectName string

	// Port is the server port written to htmlkit.yaml.
	Port int

	// Metrics enables /metrics in htmlkit.yaml.
	Metrics bool
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"contact": contactTemplate(),
	"signup":  signupTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("X003").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template into dir. Existing files are not overwritten.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = filepath.Base(dir)
	}

	for relPath, content := range t.Files {
		fullPath := filepath.Join(dir, relPath)
		if _, err := os.Stat(fullPath); err == nil {
			return errors.New("X004").
				WithDetail(fullPath + " already exists").
				WithSuggestion("Choose an empty directory")
		}

		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.New("X004").WithDetailf("invalid template %s: %v", relPath, err).Wrap(err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.New("X004").WithDetailf("template execute error %s: %v", relPath, err).Wrap(err)
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}
	return nil
}

const configFile = `render:
  pretty: true
server:
  host: localhost
  port: {{.Port}}
  metrics: {{.Metrics}}
log:
  level: info
forms:
  - forms
`

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "One search form",
		Files: map[string]string{
			"htmlkit.yaml": configFile,
			"forms/search.yaml": `name: search
method: get
meta:
  title: {{.ProjectName}}
elements:
  - {type: text, name: q, placeholder: Search, validators: [minlength=2]}
  - {type: submit, name: go, label: Search}
`,
		},
	}
}

// contactTemplate returns a contact form with standard decorators.
func contactTemplate() *Template {
	return &Template{
		Name:        "contact",
		Description: "Contact form with labels, descriptions and errors",
		Files: map[string]string{
			"htmlkit.yaml": configFile,
			"forms/contact.yaml": `name: contact
meta:
  title: {{.ProjectName}}
decorators:
  - Label
  - {HtmlTag: {tag: div, class: field}}
  - Description
  - Errors
elements:
  - {type: text, name: name, label: Name, id: name, required: true}
  - {type: email, name: email, label: E-Mail, id: email, required: true}
  - type: select
    name: topic
    label: Topic
    options: [Question, Feedback, {value: other, label: Something else}]
  - type: textarea
    name: message
    label: Message
    description_markdown: Plain text, **no** attachments.
    validators: [maxlength=2000]
  - {type: submit, name: send, label: Send}
`,
		},
	}
}

// signupTemplate returns a signup form with a nested fieldset.
func signupTemplate() *Template {
	return &Template{
		Name:        "signup",
		Description: "Signup form with a nested address fieldset",
		Files: map[string]string{
			"htmlkit.yaml": configFile,
			"forms/signup.yaml": `name: signup
meta:
  title: {{.ProjectName}}
decorators: [Label, {HtmlTag: {class: field}}, Errors]
elements:
  - {type: email, name: email, label: E-Mail, id: email, required: true}
  - {type: password, name: password, label: Password, required: true, validators: [minlength=8]}
  - type: fieldset
    name: address
    label: Address
    elements:
      - {type: text, name: street, label: Street}
      - {type: text, name: city, label: City, validators: [minlength=2]}
  - {type: checkbox, name: terms, label: I accept the terms, required: true}
  - {type: submit, name: register, label: Register}
`,
		},
	}
}
