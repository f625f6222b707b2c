package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerConverterTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Execute renders the named template with data. The other registered
// templates are associated with it so that it may call them by name.
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	text, ok := tr.Get(name)
	if !ok {
		return "", fmt.Errorf("template %s is not registered", name)
	}

	tmpl, err := template.New(name).Funcs(funcMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	for other, otherText := range tr.templates {
		if other == name {
			continue
		}
		if _, err := tmpl.New(other).Parse(otherText); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", other, err)
		}
	}
	return render(tmpl, data)
}

// registerConverterTemplates registers the JSON converter file and its functions
func (tr *TemplateRegistry) registerConverterTemplates() {
	tr.templates["converter-file"] = `// Code generated by dogen. DO NOT EDIT.
// Source: {{.FQN}}

package {{.PackageName}}

{{.Imports}}
{{template "from-json" .}}
{{template "to-json" .}}`

	tr.templates["from-json"] = `// {{.TypeName}}FromJSON sets the properties of obj from the members of json.
// Absent and null members are left untouched.
func {{.TypeName}}FromJSON(json {{.Runtime}}.JsonObject, obj {{.ObjectType}}) error {
{{- range .Decoders}}
	// {{.Name}}
{{.Code}}
{{- end}}
	return nil
}
`

	tr.templates["to-json"] = `// {{.TypeName}}ToJSON writes the readable properties of obj into json
func {{.TypeName}}ToJSON(obj {{.ObjectType}}, json {{.Runtime}}.JsonObject) {
{{- range .Encoders}}
{{.Code}}
{{- end}}
}
`
}

// ExecuteTemplate executes a standalone Go template with the given data
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Funcs(funcMap()).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return render(tmpl, data)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"quote": Quote,
	}
}
