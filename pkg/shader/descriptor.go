// Package shader describes shader variants declaratively and renders the
// source of each distinct variant once.
package shader

import (
	"fmt"
	"hash/fnv"
	"io"
	"sort"
	"strings"
)

// Variable is a typed GLSL declaration
type Variable struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

// Descriptor names a shader template and the values it is rendered with.
// Uniforms and attributes keep their order, params are unordered.
type Descriptor struct {
	Name       string            `yaml:"name"`
	Uniforms   []Variable        `yaml:"uniforms"`
	Attributes []Variable        `yaml:"attributes"`
	Params     map[string]string `yaml:"params"`
}

// Param returns the value of a template parameter, empty when unset
func (d Descriptor) Param(name string) string {
	return d.Params[name]
}

// Canonical returns the text the key is computed from
func (d Descriptor) Canonical() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "name %s\n", d.Name)
	for _, u := range d.Uniforms {
		fmt.Fprintf(&sb, "uniform %s %s\n", u.Type, u.Name)
	}
	for _, a := range d.Attributes {
		fmt.Fprintf(&sb, "attribute %s %s\n", a.Type, a.Name)
	}
	keys := make([]string, 0, len(d.Params))
	for k := range d.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "param %s=%s\n", k, d.Params[k])
	}
	return sb.String()
}

// Key hashes the canonical form with 64 bit FNV-1a
func (d Descriptor) Key() uint64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, d.Canonical())
	return h.Sum64()
}
