package domain

import "strings"

// Software is the tag carried by the `software` label.
type Software string

const (
	SoftwareJitsi   Software = "JITSI"
	SoftwareEdumeet Software = "MM"
)

// HostKind classifies the party hosting an instance.
type HostKind string

const (
	HostKindInstitution HostKind = "INSTITUTION"
	HostKindCompany     HostKind = "COMPANY"
	HostKindPerson      HostKind = "PERSON"
	HostKindAssociation HostKind = "ASSOCIATION"
)

// HostKinds lists every known kind in the order they are published.
var HostKinds = []HostKind{
	HostKindInstitution,
	HostKindCompany,
	HostKindPerson,
	HostKindAssociation,
}

// ParseHostKind returns the kind for s and false when s is not a known kind.
func ParseHostKind(s string) (HostKind, bool) {
	for _, k := range HostKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Instance is one entry of the published catalog, keyed by Name.
type Instance struct {
	Name                   string   `json:"name"`
	URL                    string   `json:"url"`
	By                     string   `json:"by"`
	ByURL                  string   `json:"by_url"`
	ByKind                 HostKind `json:"by_kind"`
	Software               Software `json:"software"`
	AvailableBandwidthMbps string   `json:"available_bandwidth_mbps"`
	CoreCount              string   `json:"core_count"`
	UserCount              *int     `json:"user_count,omitempty"`
	CPUUsage               *float64 `json:"cpu_usage,omitempty"`
}

// Credit returns the hosting party of the instance.
func (i Instance) Credit() Credit {
	return Credit{Name: i.By, URL: i.ByURL}
}

const httpsPrefix = "https://"

// TrimTrailingSlash removes trailing slashes from url.
func TrimTrailingSlash(url string) string {
	return strings.TrimRight(url, "/")
}

// NameFromURL derives the instance identity from its public URL: the https
// scheme and trailing slashes are removed. NameFromURL(NameFromURL(u)) equals
// NameFromURL(u).
func NameFromURL(url string) string {
	name := url
	for strings.HasPrefix(name, httpsPrefix) {
		name = strings.TrimPrefix(name, httpsPrefix)
	}
	return TrimTrailingSlash(name)
}

// Ptr returns a pointer to v, for the optional Instance metrics.
func Ptr[T any](v T) *T {
	return &v
}
