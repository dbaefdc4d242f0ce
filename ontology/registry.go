package ontology

import (
	"fmt"
	"sort"
)

// ResolutionKind distinguishes what a type reference resolved to.
type ResolutionKind string

const (
	// KindTerm means the reference names a registered term.
	KindTerm ResolutionKind = "term"

	// KindOpenPrimitive means the reference names an allowlisted open
	// primitive type rather than a term.
	KindOpenPrimitive ResolutionKind = "open_primitive"
)

// Resolution is the outcome of resolving a domain or range reference.
type Resolution struct {
	Kind ResolutionKind
	ID   TermID
}

// DuplicateConflictError reports two terms that normalize to the same key
// but carry materially different categories.
type DuplicateConflictError struct {
	Key      TermID
	Existing Category
	Incoming Category
	Term     string
}

func (e *DuplicateConflictError) Error() string {
	return fmt.Sprintf("duplicate term %q (key %q): category %s conflicts with registered %s",
		e.Term, e.Key, e.Incoming, e.Existing)
}

// UnresolvedReferenceError reports a domain or range entry that names
// neither a registered term nor an allowlisted open primitive.
type UnresolvedReferenceError struct {
	Ref string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference %q", e.Ref)
}

// DefaultOpenPrimitives returns the standard open-primitive allowlist:
// generic scalar and free-text placeholder types a domain or range entry
// may name without defining a term.
func DefaultOpenPrimitives() []string {
	return []string{
		"string", "text", "number", "integer", "float", "boolean",
		"date", "datetime", "identifier", "value", "scalar", "any",
	}
}

// Registry stores terms under normalized keys and resolves type references.
// Terms register under their canonical-name key; a differing indigenous form
// registers as an alias so references to either form resolve.
type Registry struct {
	terms      map[TermID]TermDefinition
	aliases    map[TermID]TermID
	primitives map[TermID]struct{}
}

// NewRegistry creates a registry with the given open-primitive allowlist.
// Allowlist entries are normalized, so "date_time" and "Date-Time" admit
// the same references.
func NewRegistry(openPrimitives []string) *Registry {
	prims := make(map[TermID]struct{}, len(openPrimitives))
	for _, p := range openPrimitives {
		prims[NormalizeKey(p)] = struct{}{}
	}
	return &Registry{
		terms:      make(map[TermID]TermDefinition),
		aliases:    make(map[TermID]TermID),
		primitives: prims,
	}
}

// Register stores the term under its normalized key and returns the key.
// Registering a term whose key is already taken by the same category is
// idempotent and returns the existing id. A category mismatch returns a
// DuplicateConflictError.
func (r *Registry) Register(term TermDefinition) (TermID, error) {
	key := term.Key()
	if key == "" {
		return "", fmt.Errorf("term has no name or indigenous form")
	}

	if existing, ok := r.terms[key]; ok {
		if existing.Category != term.Category {
			return "", &DuplicateConflictError{
				Key:      key,
				Existing: existing.Category,
				Incoming: term.Category,
				Term:     term.Label(),
			}
		}
		return key, nil
	}

	r.terms[key] = term

	// First alias binding wins; later terms never steal an alias slot.
	if alias := NormalizeKey(term.IndigenousTerm); alias != "" && alias != key {
		if _, taken := r.aliases[alias]; !taken {
			if _, isPrimary := r.terms[alias]; !isPrimary {
				r.aliases[alias] = key
			}
		}
	}

	return key, nil
}

// Resolve maps a domain or range reference to a registered term or an open
// primitive. Unknown references return an UnresolvedReferenceError.
func (r *Registry) Resolve(ref string) (Resolution, error) {
	key := NormalizeKey(ref)
	if key == "" {
		return Resolution{}, &UnresolvedReferenceError{Ref: ref}
	}

	if _, ok := r.terms[key]; ok {
		return Resolution{Kind: KindTerm, ID: key}, nil
	}
	if primary, ok := r.aliases[key]; ok {
		return Resolution{Kind: KindTerm, ID: primary}, nil
	}
	if _, ok := r.primitives[key]; ok {
		return Resolution{Kind: KindOpenPrimitive, ID: key}, nil
	}

	return Resolution{}, &UnresolvedReferenceError{Ref: ref}
}

// Lookup returns the term registered under the id.
func (r *Registry) Lookup(id TermID) (TermDefinition, bool) {
	term, ok := r.terms[id]
	return term, ok
}

// Has reports whether a term is registered under the id.
func (r *Registry) Has(id TermID) bool {
	_, ok := r.terms[id]
	return ok
}

// Len returns the number of registered terms, aliases excluded.
func (r *Registry) Len() int {
	return len(r.terms)
}

// IDs returns all registered term ids in sorted order.
func (r *Registry) IDs() []TermID {
	ids := make([]TermID, 0, len(r.terms))
	for id := range r.terms {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
