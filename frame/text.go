package frame

import (
	"strings"
	"text/template"

	"github.com/mapreel/mapreel/election"
)

type templateData struct {
	Index int
	Year  int
}

// TextTemplate renders frames with a Go text/template exposing .Index and .Year.
type TextTemplate struct {
	source string
	tmpl   *template.Template
}

// NewTextTemplate parses pattern.
func NewTextTemplate(pattern string) (*TextTemplate, error) {
	tmpl, err := template.New("frame").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return nil, err
	}

	return &TextTemplate{source: pattern, tmpl: tmpl}, nil
}

// Render executes the template for index.
func (t *TextTemplate) Render(index int) (string, error) {
	var b strings.Builder
	if err := t.tmpl.Execute(&b, templateData{Index: index, Year: election.Year(index)}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (t *TextTemplate) String() string {
	return t.source
}
