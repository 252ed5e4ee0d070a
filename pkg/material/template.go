package material

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Template is a named preset of lambert/specular/ambient coefficients
type Template struct {
	Name     string
	Specular float64
	Lambert  float64
	Ambient  float64
}

var templates = map[string]Template{
	"matte":   {Name: "matte", Specular: 0, Lambert: 0.9, Ambient: 0.1},
	"plastic": {Name: "plastic", Specular: 0.2, Lambert: 0.7, Ambient: 0.1},
	"metal":   {Name: "metal", Specular: 0.7, Lambert: 0.3, Ambient: 0.05},
	"mirror":  {Name: "mirror", Specular: 0.95, Lambert: 0, Ambient: 0.02},
}

// LookupTemplate finds a template by case-insensitive name
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Template{}, fmt.Errorf("unknown material template %q", name)
	}
	return t, nil
}

// TemplateNames returns the known template names in sorted order
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Material instantiates the template with the given base color
func (t Template) Material(color core.Color) Material {
	return NewUniformMaterial(color, t.Specular, t.Lambert, t.Ambient)
}
