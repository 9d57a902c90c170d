package accounts

import "slices"

// ServiceAccount is a provisioned Azure OpenAI / Cognitive Services account.
type ServiceAccount struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Location string `json:"location"`
	Kind     string `json:"kind"`
	Key      string `json:"-"`
}

// Set holds accounts keyed by name, in discovery order.
type Set struct {
	order  []string
	byName map[string]ServiceAccount
}

func NewSet(list ...ServiceAccount) *Set {
	s := &Set{byName: make(map[string]ServiceAccount, len(list))}
	for _, a := range list {
		s.Add(a)
	}
	return s
}

// Add inserts or replaces an account. Replacing keeps the original position.
func (s *Set) Add(a ServiceAccount) {
	if s.byName == nil {
		s.byName = make(map[string]ServiceAccount)
	}
	if _, ok := s.byName[a.Name]; !ok {
		s.order = append(s.order, a.Name)
	}
	s.byName[a.Name] = a
}

func (s *Set) Get(name string) (ServiceAccount, bool) {
	if s == nil {
		return ServiceAccount{}, false
	}
	a, ok := s.byName[name]
	return a, ok
}

// SetKey attaches an access key to an already discovered account.
func (s *Set) SetKey(name, key string) bool {
	a, ok := s.Get(name)
	if !ok {
		return false
	}
	a.Key = key
	s.byName[name] = a
	return true
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// List returns the accounts in discovery order.
func (s *Set) List() []ServiceAccount {
	if s == nil {
		return nil
	}
	out := make([]ServiceAccount, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// FilterByRegion keeps the accounts whose location is in regions.
// An empty regions list means no filtering.
func (s *Set) FilterByRegion(regions []string) *Set {
	if len(regions) == 0 {
		return s
	}
	out := NewSet()
	for _, a := range s.List() {
		if slices.Contains(regions, a.Location) {
			out.Add(a)
		}
	}
	return out
}
