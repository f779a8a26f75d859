package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys, in binding order
}

// NewResolver creates a resolver from bindings. When a key appears twice
// the later binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = lo.Uniq(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Describe returns the display form of the keys bound to action,
// e.g. "q, ctrl+c".
func (r *Resolver) Describe(action Action) string {
	return strings.Join(lo.Map(r.KeysFor(action), func(k string, _ int) string {
		return DisplayKey(k)
	}), ", ")
}
