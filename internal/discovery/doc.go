// Package discovery advertises and finds editable-table servers over mDNS.
//
// A server started with advertising enabled registers itself as a
// "_edtable._tcp" service in the "local." domain. Its TXT records carry the
// build version, the page path, the URL scheme and whether the table is
// read-only.
//
// # Usage Example
//
//	// Advertise until ctx is cancelled
//	done, err := discovery.Advertise(ctx, "sales", 8501, map[string]string{
//	    discovery.TxtPath: "/",
//	})
//
//	// Find servers on the local network
//	instances, err := discovery.Scan(context.Background(), 3*time.Second)
//	for _, inst := range instances {
//	    fmt.Println(inst.Name, inst.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
