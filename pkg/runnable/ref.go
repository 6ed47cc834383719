// SPDX-License-Identifier: MPL-2.0

package runnable

import "strings"

// Ref names another runnable as "Kind:name". A bare name refers to a runfile task.
type Ref struct {
	Kind Kind
	Name string
}

// ParseRef parses a dependency reference. Only the first ':' separates the
// kind from the name.
func ParseRef(s string) (Ref, error) {
	kindText, name, found := strings.Cut(s, ":")
	if !found {
		return Ref{Kind: KindRunFile, Name: s}, nil
	}
	kind, err := ParseKind(kindText)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: kind, Name: name}, nil
}

// String formats the reference as "kind:name".
func (r Ref) String() string {
	return r.Kind.String() + ":" + r.Name
}

// Lookup returns the first runnable of the given kind whose name equals name.
func Lookup(all []Runnable, kind Kind, name string) (Runnable, bool) {
	for _, r := range all {
		if r.Kind() == kind && r.Name == name {
			return r, true
		}
	}
	return Runnable{}, false
}

// LookupAny returns the first runnable, in discovery order, whose name or
// alias equals name.
func LookupAny(all []Runnable, name string) (Runnable, bool) {
	for _, r := range all {
		if r.HasName(name) {
			return r, true
		}
	}
	return Runnable{}, false
}
