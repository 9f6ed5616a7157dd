package keymap

// Resolver maps a key pressed in a set of active contexts to an action.
type Resolver struct {
	byContext map[string]map[string]Action
}

// NewResolver indexes bindings by context and key. When a key is bound
// twice in one context the first binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{byContext: make(map[string]map[string]Action)}
	for _, b := range bindings {
		keys := r.byContext[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.byContext[b.Context] = keys
		}
		for _, k := range b.Keys {
			if _, taken := keys[k]; !taken {
				keys[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action bound to key in the first of contexts that
// binds it, or "" when none does.
func (r *Resolver) Resolve(key string, contexts ...string) Action {
	for _, c := range contexts {
		if a, ok := r.byContext[c][key]; ok {
			return a
		}
	}
	return ""
}
