// Package entitytype holds the closed registry of entity kinds that
// comments and attachments may reference, and the resolver that turns a
// (type name, entity id) pair into a generic reference.
package entitytype

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/crm-backend/internal/domain"
)

// Token is an opaque handle for a registered entity kind. Its Name is the
// canonical lowercase form.
type Token struct {
	name string
}

// Name returns the canonical registered name.
func (t Token) Name() string { return t.name }

// DefaultKinds is the static list of entity kinds registered at startup.
// Tokens are never reused for a different kind; new kinds are appended.
var DefaultKinds = []string{
	"account",
	"contact",
	"lead",
	"opportunity",
	"case",
	"task",
	"invoice",
	"document",
	"event",
	"user",
	"profile",
}

// Registry maps stable lowercase type names to tokens. It is populated
// once at construction and immutable afterwards, so concurrent reads
// need no locking.
type Registry struct {
	tokens map[string]Token
}

// NewRegistry builds a registry from the given kind names. Names are
// canonicalized to lowercase; a duplicate or empty name is a programming
// error and panics, since registration only happens at startup.
func NewRegistry(kinds ...string) *Registry {
	tokens := make(map[string]Token, len(kinds))
	for _, kind := range kinds {
		name := strings.ToLower(strings.TrimSpace(kind))
		if name == "" {
			panic("entitytype: empty kind name")
		}
		if _, exists := tokens[name]; exists {
			panic(fmt.Sprintf("entitytype: duplicate kind %q", name))
		}
		tokens[name] = Token{name: name}
	}
	return &Registry{tokens: tokens}
}

// NewDefaultRegistry builds a registry with DefaultKinds.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultKinds...)
}

// Resolve returns the token for a type name. Matching is case-insensitive
// and ignores surrounding whitespace. An unregistered name fails with
// domain.ErrUnknownEntityType.
func (r *Registry) Resolve(name string) (Token, error) {
	canonical := strings.ToLower(strings.TrimSpace(name))
	token, ok := r.tokens[canonical]
	if !ok {
		return Token{}, fmt.Errorf("entity type %q: %w", name, domain.ErrUnknownEntityType)
	}
	return token, nil
}

// Known reports whether a type name resolves without returning the token.
func (r *Registry) Known(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Kinds returns the registered names in no particular order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.tokens))
	for name := range r.tokens {
		kinds = append(kinds, name)
	}
	return kinds
}
