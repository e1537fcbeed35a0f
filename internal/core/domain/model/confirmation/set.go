package confirmation

import "maps"

// Set holds the confirmation requests of one order, at most one per type.
type Set map[Type]Request

// Get returns the request of type t, or a None request.
func (s Set) Get(t Type) Request {
	if r, ok := s[t]; ok {
		return r
	}
	return Request{Type: t, Status: StatusNone}
}

// With returns a copy of s holding r.
func (s Set) With(r Request) Set {
	out := maps.Clone(s)
	if out == nil {
		out = make(Set, 1)
	}
	out[r.Type] = r
	return out
}

func (s Set) IsSent(t Type) bool      { return s.Get(t).Status == StatusSent }
func (s Set) IsConfirmed(t Type) bool { return s.Get(t).Status == StatusConfirmed }
func (s Set) IsDeclined(t Type) bool  { return s.Get(t).Status == StatusDeclined }
