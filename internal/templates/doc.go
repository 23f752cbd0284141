// Package templates provides project scaffolding templates.
//
// A template is an htmlkit.yaml plus one or more form definitions under
// forms/, ready for "htmlkit serve".
//
// # Available Templates
//
//   - minimal: One search form
//   - contact: Contact form with labels, descriptions and errors
//   - signup: Signup form with a nested address fieldset
//
// # Usage
//
//	tmpl, err := templates.Get("contact")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(projectDir, templates.Config{ProjectName: "Support"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
//	{{.ProjectName}}     - Name of the project, the page title
//	{{.Port}}            - Server port
//	{{.Metrics}}         - Whether /metrics is enabled
package templates
