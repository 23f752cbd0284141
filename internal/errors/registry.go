package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Kind    Kind
	Message string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Core tree (H001-H019)
	// ============================================

	"H001": {Kind: KindInvalidArgument, Message: "Invalid attribute name"},
	"H002": {Kind: KindNotFound, Message: "Referenced node not found"},
	"H003": {Kind: KindRender, Message: "Wrapper loop detected"},
	"H004": {Kind: KindRender, Message: "Element has no tag"},
	"H005": {Kind: KindRender, Message: "Void elements must not have content"},
	"H006": {Kind: KindInvalidArgument, Message: "Attribute is read-only"},
	"H007": {Kind: KindInvalidArgument, Message: "Invalid attribute value"},
	"H008": {Kind: KindRender, Message: "Render panicked"},

	// ============================================
	// Decorators (D001-D019)
	// ============================================

	"D001": {Kind: KindInvalidArgument, Message: "Decorator plugin not found"},
	"D002": {Kind: KindInvalidArgument, Message: "Decorator does not support options"},
	"D003": {Kind: KindInvalidArgument, Message: "Invalid decorator specification"},
	"D004": {Kind: KindLogic, Message: "Cannot skip a decorator that has already been applied"},
	"D005": {Kind: KindLogic, Message: "Decorator chain is frozen"},
	"D006": {Kind: KindInvalidArgument, Message: "Invalid decorator option"},

	// ============================================
	// Forms (F001-F019)
	// ============================================

	"F001": {Kind: KindNotFound, Message: "Form element not found"},
	"F002": {Kind: KindInvalidArgument, Message: "Unknown form element type"},
	"F003": {Kind: KindInvalidArgument, Message: "Invalid form element value"},
	"F004": {Kind: KindInvalidArgument, Message: "Invalid form definition"},
	"F005": {Kind: KindInvalidArgument, Message: "Invalid validator specification"},
	"F006": {Kind: KindInvalidArgument, Message: "Form element has no name"},
	"F007": {Kind: KindInvalidArgument, Message: "Option not supported by form element"},
	"F008": {Kind: KindInvalidArgument, Message: "Invalid form submission"},

	// ============================================
	// Config (C001-C009)
	// ============================================

	"C001": {Kind: KindConfig, Message: "Configuration file not found"},
	"C002": {Kind: KindConfig, Message: "Invalid configuration file"},
	"C003": {Kind: KindConfig, Message: "Invalid configuration value"},

	// ============================================
	// CLI (X001-X009)
	// ============================================

	"X001": {Kind: KindCLI, Message: "Form not defined"},
	"X002": {Kind: KindCLI, Message: "Server failed"},
	"X003": {Kind: KindCLI, Message: "Template not found"},
	"X004": {Kind: KindCLI, Message: "Template could not be created"},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
