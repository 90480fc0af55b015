package server

import (
	"crypto/tls"
	"fmt"

	"github.com/muurk/edtable/internal/logging"
	"go.uber.org/zap"
)

// NewTLSConfig creates a TLS configuration from PEM certificate and key files
func NewTLSConfig(certPath, keyPath string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	logging.Info("TLS configuration created from files",
		zap.String("cert", certPath),
		zap.String("key", keyPath),
	)

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"http/1.1"},
	}, nil
}

// GetTLSInfo returns human-readable TLS configuration information
func GetTLSInfo(config *tls.Config) map[string]interface{} {
	names := make([]string, 0, len(config.Certificates))
	for _, cert := range config.Certificates {
		if cert.Leaf != nil {
			names = append(names, cert.Leaf.Subject.CommonName)
		}
	}

	return map[string]interface{}{
		"min_version":     tls.VersionName(config.MinVersion),
		"num_certs":       len(config.Certificates),
		"subjects":        names,
		"session_tickets": !config.SessionTicketsDisabled,
	}
}
