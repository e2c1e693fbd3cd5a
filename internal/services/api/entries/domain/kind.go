// Package domain holds the entry kinds served by the content stores
package domain

import (
	"sort"
	"strings"

	perr "biasdb/internal/platform/errors"
	"biasdb/internal/platform/paging"
)

// Entry is a stored record addressed by the digest of its text
type Entry interface {
	EntryHash() string
	EntryText() string
	EntryURL() string
	EntryBiasType() string
}

// Input is a validated create payload
type Input interface {
	InputText() string
}

// Patch is a validated partial update
type Patch interface {
	PatchText() *string
	// Empty reports whether the patch changes no mutable field
	Empty() bool
}

// Layout maps an entry onto its table
type Layout[E Entry] struct {
	// Table holds the rows for this kind
	Table string

	// Columns are the stored fields after hash and text, in Values and Dest order
	Columns []string

	// Values returns the Columns values of e
	Values func(e E) []any

	// Dest returns scan targets for hash, text and then Columns
	Dest func(e *E) []any
}

// Kind binds one entry variant to its layout and patch rules
type Kind[E Entry, I Input, P Patch] struct {
	// Name is the singular label used in logs, metrics and errors
	Name string

	Layout[E]

	// Build makes a new entry from a create payload and its digest
	Build func(in I, hash string) E

	// Merge copies the set fields of p onto cur
	Merge func(cur E, p P) E

	// View returns every public field of e keyed by its json name
	View func(e E) map[string]any
}

// Apply validates p against cur and returns the patched entry
// text may be echoed but never changed
func (k Kind[E, I, P]) Apply(cur E, p P) (E, error) {
	if t := p.PatchText(); t != nil && *t != cur.EntryText() {
		return cur, perr.WithField(perr.Validationf("text cannot be changed, create a new %s instead", k.Name), "text")
	}
	if p.Empty() {
		return cur, perr.Validationf("patch must set at least one field")
	}
	return k.Merge(cur, p), nil
}

// Fields lists the projectable field names in a stable order
func (k Kind[E, I, P]) Fields() []string {
	var zero E
	m := k.View(zero)
	out := make([]string, 0, len(m)+1)
	for name := range m {
		out = append(out, name)
	}
	if _, ok := m["url"]; !ok {
		out = append(out, "url")
	}
	sort.Strings(out)
	return out
}

// ParseFields splits a comma separated projection and rejects unknown names
// an empty raw value means the full view
func (k Kind[E, I, P]) ParseFields(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	known := map[string]bool{}
	for _, f := range k.Fields() {
		known[f] = true
	}
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		if !known[f] {
			return nil, perr.WithField(perr.Validationf("unknown field '%s'", f), "fields")
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// Project narrows items to fields, hash is always kept
func (k Kind[E, I, P]) Project(items []E, fields []string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		full := k.View(it)
		row := map[string]any{"hash": it.EntryHash()}
		for _, f := range fields {
			if v, ok := full[f]; ok {
				row[f] = v
			}
		}
		out = append(out, row)
	}
	return out
}

// Filter narrows a listing, empty fields match anything
type Filter struct {
	Hash     string `json:"hash,omitempty"`
	BiasType string `json:"bias_type,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Query is a parsed listing request
type Query struct {
	Filter Filter
	// Text is hashed into Filter.Hash by the service
	Text   string
	Fields []string
	Window paging.Window
}
