package record

import "fmt"

type actionKind int

const (
	actionKeep actionKind = iota
	actionSet
	actionUnset
)

// Action is one field's instruction inside an Update: keep the current
// value, set a new one, or — for nullable fields only — unset it,
// clearing the entry. The zero Action keeps, so a zero-valued Update
// struct in generated bindings leaves every field alone.
type Action struct {
	kind  actionKind
	value any
}

// Keep returns the action that leaves the field untouched.
func Keep() Action { return Action{} }

// Set returns the action that overwrites the field with v.
func Set(v any) Action { return Action{kind: actionSet, value: v} }

// Unset returns the action that clears a nullable field. Distinct from
// Keep: Keep leaves an existing value in place, Unset removes it.
func Unset() Action { return Action{kind: actionUnset} }

// IsKeep reports whether the action leaves the field untouched.
func (a Action) IsKeep() bool { return a.kind == actionKeep }

// IsUnset reports whether the action clears the field.
func (a Action) IsUnset() bool { return a.kind == actionUnset }

// SetValue returns the value carried by a Set action; ok is false for
// Keep and Unset.
func (a Action) SetValue() (any, bool) {
	if a.kind != actionSet {
		return nil, false
	}
	return a.value, true
}

// String renders the action for diagnostics.
func (a Action) String() string {
	switch a.kind {
	case actionSet:
		return fmt.Sprintf("set(%v)", a.value)
	case actionUnset:
		return "unset"
	default:
		return "keep"
	}
}

// Update is the partial-mutation shape of a pattern: one action per
// field. Build updates with NewUpdate; an update built without any Set
// or Unset calls keeps every field and leaves a table unchanged.
type Update struct {
	pattern *Pattern
	actions []Action
}

// Pattern returns the pattern the update was built from.
func (u Update) Pattern() *Pattern { return u.pattern }

// Action returns the action recorded for the named field.
func (u Update) Action(name string) (Action, bool) {
	if u.pattern == nil {
		return Action{}, false
	}
	i, ok := u.pattern.fieldIndex(name)
	if !ok {
		return Action{}, false
	}
	return u.actions[i], true
}

// UpdateBuilder assembles an Update field by field. Fields not
// mentioned default to Keep. Calls chain; the first error sticks and is
// reported by Build.
type UpdateBuilder struct {
	pattern *Pattern
	actions []Action
	err     error
}

// NewUpdate starts an all-Keep update for the pattern.
func NewUpdate(p *Pattern) *UpdateBuilder {
	return &UpdateBuilder{
		pattern: p,
		actions: make([]Action, p.NumFields()),
	}
}

// Set records an overwrite of the named field with v. The value must
// fit the field's base type.
func (b *UpdateBuilder) Set(name string, v any) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	i, ok := b.pattern.fieldIndex(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		return b
	}
	norm, err := b.pattern.fields[i].typ.normalize(v)
	if err != nil {
		b.err = fmt.Errorf("field %q: %w", name, err)
		return b
	}
	b.actions[i] = Action{kind: actionSet, value: norm}
	return b
}

// Keep records an explicit no-op for the named field. Unmentioned
// fields keep by default; the call only documents intent.
func (b *UpdateBuilder) Keep(name string) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	i, ok := b.pattern.fieldIndex(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		return b
	}
	b.actions[i] = Action{}
	return b
}

// Unset records a clear of the named nullable field.
func (b *UpdateBuilder) Unset(name string) *UpdateBuilder {
	if b.err != nil {
		return b
	}
	i, ok := b.pattern.fieldIndex(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		return b
	}
	if b.pattern.fields[i].null != Nullable {
		b.err = fmt.Errorf("%w: %q", ErrNotNullUnset, name)
		return b
	}
	b.actions[i] = Action{kind: actionUnset}
	return b
}

// Build finalizes the update.
func (b *UpdateBuilder) Build() (Update, error) {
	if b.err != nil {
		return Update{}, b.err
	}
	actions := make([]Action, len(b.actions))
	copy(actions, b.actions)
	return Update{pattern: b.pattern, actions: actions}, nil
}
