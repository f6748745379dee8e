package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Target is a condition target. The engine wire format encodes it either as a
// single string (kill-target filters, quest references, place ids) or as a
// string list (item templates, map names), depending on the condition type.
// The polymorphism lives entirely in this type's JSON codec.
type Target struct {
	values []string
	list   bool
}

// SingleTarget returns a Target encoded as a bare string.
func SingleTarget(v string) Target {
	return Target{values: []string{v}}
}

// ListTarget returns a Target encoded as a string list. An empty list is
// encoded as [].
func ListTarget(vs ...string) Target {
	return Target{values: vs, list: true}
}

// Values returns the target values. Single targets yield a one-element slice.
func (t Target) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

// IsList reports whether the target encodes as a list.
func (t Target) IsList() bool { return t.list }

func (t Target) MarshalJSON() ([]byte, error) {
	if t.list {
		vs := t.values
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	}
	if len(t.values) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(t.values[0])
}

func (t *Target) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = SingleTarget(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("target is neither string nor string list: %w", err)
	}
	*t = ListTarget(many...)
	return nil
}

// Value is a condition threshold. Counter and handover conditions encode it
// as a numeric string ("5"), the level condition as a bare number.
type Value struct {
	n       int
	asNum   bool
	defined bool
}

// StringValue returns a Value encoded as a numeric string.
func StringValue(n int) Value { return Value{n: n, defined: true} }

// NumberValue returns a Value encoded as a bare number.
func NumberValue(n int) Value { return Value{n: n, asNum: true, defined: true} }

// Int returns the numeric value.
func (v Value) Int() int { return v.n }

// Defined reports whether the value was set.
func (v Value) Defined() bool { return v.defined }

func (v Value) MarshalJSON() ([]byte, error) {
	if v.asNum {
		return json.Marshal(v.n)
	}
	return json.Marshal(strconv.Itoa(v.n))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("value is neither number nor string: %w", err)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parsing value %q: %w", s, err)
	}
	*v = StringValue(n)
	return nil
}
