package template

import (
	"strconv"

	"github.com/goliatone/go-press/internal/document"
)

// Binding is the value held by a name. Raw values are trusted HTML and are
// interpolated without escaping.
type Binding struct {
	Value string
	Raw   bool
}

// Sequence is an ordered list of values spelled as base_1..base_n.
type Sequence []string

// Env is the mutable variable scope shared by every render step of one
// layout chain. It is passed by pointer so fields set by a child document stay
// visible while its layouts render, unless a layout redefines them.
type Env struct {
	bindings map[string]Binding
}

// NewEnv returns an empty scope.
func NewEnv() *Env {
	return &Env{bindings: map[string]Binding{}}
}

// Set binds name to an escaped value, replacing any previous binding.
func (e *Env) Set(name, value string) {
	e.bindings[name] = Binding{Value: value}
}

// SetRaw binds name to trusted HTML.
func (e *Env) SetRaw(name, value string) {
	e.bindings[name] = Binding{Value: value, Raw: true}
}

// Get returns the value bound to name.
func (e *Env) Get(name string) (string, bool) {
	b, ok := e.bindings[name]
	return b.Value, ok
}

// Lookup returns the full binding for name.
func (e *Env) Lookup(name string) (Binding, bool) {
	b, ok := e.bindings[name]
	return b, ok
}

// Restore puts back a binding captured with Lookup. A binding that did not
// exist is removed.
func (e *Env) Restore(name string, b Binding, existed bool) {
	if !existed {
		delete(e.bindings, name)
		return
	}
	e.bindings[name] = b
}

// Truthy is false for unset names and empty values.
func (e *Env) Truthy(name string) bool {
	value, _ := e.Get(name)
	return value != ""
}

// Sequence collects base_1, base_2, ... stopping at the first missing index.
// Later indexes past a gap are ignored.
func (e *Env) Sequence(base string) Sequence {
	var seq Sequence
	for idx := 1; ; idx++ {
		value, ok := e.Get(elementName(base, idx))
		if !ok {
			return seq
		}
		seq = append(seq, value)
	}
}

// SetSequence binds every element of seq under base.
func (e *Env) SetSequence(base string, seq Sequence) {
	for i, value := range seq {
		e.Set(elementName(base, i+1), value)
	}
}

// LoadDocument copies every front matter field of doc into the scope,
// overwriting existing names.
func (e *Env) LoadDocument(doc *document.Document) {
	for _, header := range doc.Headers() {
		e.Set(header.Key, doc.Header(header.Key))
	}
}

func elementName(base string, idx int) string {
	return base + "_" + strconv.Itoa(idx)
}
