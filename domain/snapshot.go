package domain

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
)

// Credit is a hosting party credited on the directory page.
type Credit struct {
	Name string
	URL  string
}

// MarshalJSON encodes the credit as a [name, url] pair.
func (c Credit) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Name, c.URL})
}

// UnmarshalJSON decodes a [name, url] pair.
func (c *Credit) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("credit must have 2 elements, got %d", len(pair))
	}
	c.Name, c.URL = pair[0], pair[1]
	return nil
}

// CreditSet groups unique credits by host kind.
type CreditSet struct {
	byKind map[HostKind]map[Credit]struct{}
}

// NewCreditSet creates an empty set with every known kind present.
func NewCreditSet() *CreditSet {
	byKind := make(map[HostKind]map[Credit]struct{}, len(HostKinds))
	for _, k := range HostKinds {
		byKind[k] = make(map[Credit]struct{})
	}
	return &CreditSet{byKind: byKind}
}

// Add registers c under kind. Adding the same pair again is a no-op.
func (s *CreditSet) Add(kind HostKind, c Credit) {
	set, ok := s.byKind[kind]
	if !ok {
		set = make(map[Credit]struct{})
		s.byKind[kind] = set
	}
	set[c] = struct{}{}
}

// Len returns the number of distinct credits stored for kind.
func (s *CreditSet) Len(kind HostKind) int {
	return len(s.byKind[kind])
}

// Lists flattens the set. Every known kind is present and each list is
// sorted by name, then URL.
func (s *CreditSet) Lists() map[HostKind][]Credit {
	out := make(map[HostKind][]Credit, len(s.byKind))
	for _, k := range HostKinds {
		out[k] = []Credit{}
	}
	for kind, set := range s.byKind {
		list := make([]Credit, 0, len(set))
		for c := range set {
			list = append(list, c)
		}
		slices.SortFunc(list, compareCredits)
		out[kind] = list
	}
	return out
}

func compareCredits(a, b Credit) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.URL, b.URL)
}

// Snapshot is the published catalog for one poll cycle.
type Snapshot struct {
	Instances []Instance            `json:"instances"`
	Credits   map[HostKind][]Credit `json:"credits"`
}
