package shader

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// ErrUnknownTemplate is returned for a descriptor naming no registered template
var ErrUnknownTemplate = errors.New("unknown shader template")

// Program is the rendered source of one variant
type Program struct {
	Key            uint64
	Name           string
	VertexSource   string
	FragmentSource string
}

type source struct {
	vertex   *template.Template
	fragment *template.Template
}

// Cache renders every distinct descriptor once
type Cache struct {
	mu       sync.Mutex
	sources  map[string]source
	programs map[uint64]*Program
}

// NewCache creates a cache holding the builtin templates
func NewCache() *Cache {
	c := &Cache{
		sources:  make(map[string]source),
		programs: make(map[uint64]*Program),
	}
	for _, name := range []string{"skinning", "color"} {
		vertex, err := builtinTemplates.ReadFile("templates/" + name + ".vert.tmpl")
		if err != nil {
			panic(err)
		}
		fragment, err := builtinTemplates.ReadFile("templates/" + name + ".frag.tmpl")
		if err != nil {
			panic(err)
		}
		if err := c.Register(name, string(vertex), string(fragment)); err != nil {
			panic(err)
		}
	}
	return c
}

// Register parses the vertex and fragment templates of a shader family.
// Registering a name again drops the programs already rendered from it.
func (c *Cache) Register(name, vertex, fragment string) error {
	vt, err := template.New(name + ".vert").Option("missingkey=error").Parse(vertex)
	if err != nil {
		return fmt.Errorf("failed to parse vertex template %s: %w", name, err)
	}
	ft, err := template.New(name + ".frag").Option("missingkey=error").Parse(fragment)
	if err != nil {
		return fmt.Errorf("failed to parse fragment template %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = source{vertex: vt, fragment: ft}
	for key, p := range c.programs {
		if p.Name == name {
			delete(c.programs, key)
		}
	}
	return nil
}

// Get returns the program of d, rendering it on first use
func (c *Cache) Get(d Descriptor) (*Program, error) {
	key := d.Key()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	src, ok := c.sources[d.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, d.Name)
	}

	var vs, fs strings.Builder
	if err := src.vertex.Execute(&vs, d); err != nil {
		return nil, fmt.Errorf("failed to render vertex shader %s: %w", d.Name, err)
	}
	if err := src.fragment.Execute(&fs, d); err != nil {
		return nil, fmt.Errorf("failed to render fragment shader %s: %w", d.Name, err)
	}
	p := &Program{Key: key, Name: d.Name, VertexSource: vs.String(), FragmentSource: fs.String()}
	c.programs[key] = p
	slog.Debug("shader variant rendered", "name", d.Name, "key", fmt.Sprintf("%016x", key))
	return p, nil
}

// Len returns the number of distinct programs rendered
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.programs)
}
