package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Instance is an editable-table server found on the network
type Instance struct {
	// Name is the mDNS instance name (e.g., "edtable")
	Name string

	// Host is the mDNS hostname (e.g., "workstation.local.")
	Host string

	// IP is the resolved address, IPv4 when one is advertised
	IP string

	// Port is the HTTP port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "version=0.3.0", "path=/", "scheme=https"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable description of the instance
func (i *Instance) String() string {
	return fmt.Sprintf("%s (%s) at %s", i.Name, i.Host, i.URL())
}

// URL returns the page URL of the instance
func (i *Instance) URL() string {
	scheme := i.GetMetadata(TxtScheme)
	if scheme == "" {
		scheme = "http"
	}
	path := i.GetMetadata(TxtPath)
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(i.IP, strconv.Itoa(i.Port)), path)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (i *Instance) GetMetadata(key string) string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata[key]
}
