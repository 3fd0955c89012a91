package discovery

import (
	"strings"
)

// TXT record keys advertised under ServiceHost.
const (
	// txtKeyVersion is the RVD protocol version string the host speaks,
	// e.g. "screenview1" (see rvd.ProtocolVersionString).
	txtKeyVersion = "V"

	// txtKeyName is the human-readable host name shown to a user
	// choosing among several discovered hosts.
	txtKeyName = "N"

	// txtKeySchemeNone advertises whether the host accepts
	// unauthenticated (SchemeNone) connections.
	txtKeySchemeNone = "SN"
)

// MaxHostNameLength bounds the advertised host name, mirroring DNS-SD's
// practical TXT record size constraints.
const MaxHostNameLength = 63

// HostTXT describes a ScreenView Host's advertised TXT record.
type HostTXT struct {
	// Version is the RVD protocol version string the host speaks.
	Version string

	// Name is a human-readable host name.
	Name string

	// SchemeNoneAllowed is true if the host accepts connections with no
	// password.
	SchemeNoneAllowed bool
}

// Encode converts the TXT record into DNS-SD key=value strings.
func (h *HostTXT) Encode() []string {
	txt := []string{
		txtKeyVersion + "=" + h.Version,
	}
	if h.Name != "" {
		name := h.Name
		if len(name) > MaxHostNameLength {
			name = name[:MaxHostNameLength]
		}
		txt = append(txt, txtKeyName+"="+name)
	}
	if h.SchemeNoneAllowed {
		txt = append(txt, txtKeySchemeNone+"=1")
	}
	return txt
}

// ParseTXT parses raw TXT record strings into a map.
func ParseTXT(records []string) map[string]string {
	result := make(map[string]string, len(records))
	for _, record := range records {
		if idx := strings.IndexByte(record, '='); idx > 0 {
			result[record[:idx]] = record[idx+1:]
		}
	}
	return result
}

// ParseHostTXT parses raw TXT records into a HostTXT.
func ParseHostTXT(records []string) (*HostTXT, error) {
	m := ParseTXT(records)

	v, ok := m[txtKeyVersion]
	if !ok {
		return nil, ErrInvalidTXTRecord
	}

	txt := &HostTXT{
		Version:           v,
		Name:              m[txtKeyName],
		SchemeNoneAllowed: m[txtKeySchemeNone] == "1",
	}
	return txt, nil
}
