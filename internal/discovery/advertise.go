package discovery

import (
	"context"
	"fmt"

	"github.com/grandcat/zeroconf"
	"github.com/muurk/edtable/internal/logging"
	"go.uber.org/zap"
)

// Advertise registers name as a ServiceType instance on port and keeps the
// registration alive until ctx is done. It returns once the service is
// registered; the returned channel is closed after the service is withdrawn.
func Advertise(ctx context.Context, name string, port int, metadata map[string]string) (<-chan struct{}, error) {
	if name == "" {
		return nil, fmt.Errorf("instance name is required")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d", port)
	}

	server, err := zeroconf.Register(name, ServiceType, ServiceDomain, port, formatTXT(metadata), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising over mDNS",
		zap.String("name", name),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		server.Shutdown()
		logging.Info("mDNS advertisement withdrawn", zap.String("name", name))
	}()
	return done, nil
}
