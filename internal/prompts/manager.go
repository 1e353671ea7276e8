// Package prompts loads and renders the prompt templates shipped with the
// binary. Templates are YAML files embedded at build time; rendering is
// plain {placeholder} substitution.
package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Template is a single named prompt with its substitution slots.
type Template struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Template     string   `yaml:"template"`
	Placeholders []string `yaml:"placeholders"`
}

// Manager holds the loaded templates, keyed by name.
type Manager struct {
	templates map[string]*Template
}

// NewManager loads every embedded template file.
func NewManager() (*Manager, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded templates: %w", err)
	}

	m := &Manager{templates: make(map[string]*Template)}
	for _, entry := range entries {
		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		var tmpl Template
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", entry.Name(), err)
		}
		if tmpl.Name == "" {
			return nil, fmt.Errorf("template %s has no name", entry.Name())
		}
		m.templates[tmpl.Name] = &tmpl
	}
	return m, nil
}

// Render substitutes the given values into the named template. Every
// declared placeholder must be supplied.
func (m *Manager) Render(name string, values map[string]string) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", name)
	}
	for _, placeholder := range tmpl.Placeholders {
		if _, ok := values[placeholder]; !ok {
			return "", fmt.Errorf("template %s: missing value for placeholder %q", name, placeholder)
		}
	}
	rendered := tmpl.Template
	for key, value := range values {
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", value)
	}
	return rendered, nil
}

// Names lists the loaded template names.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.templates))
	for name := range m.templates {
		names = append(names, name)
	}
	return names
}
