package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateTLSMode tests the main TLS mode validation function
func TestValidateTLSMode(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "disabled mode",
			tls: TLSConfig{
				Mode: "disabled",
			},
			expectError: false,
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "invalid mode",
			tls: TLSConfig{
				Mode: "invalid",
			},
			expectError: true,
			errorMsg:    "invalid TLS mode: invalid",
		},
		{
			name: "empty mode",
			tls: TLSConfig{
				Mode: "",
			},
			expectError: true,
			errorMsg:    "invalid TLS mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSMode(tt.tls)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateCertAndKeyRequired tests server mode certificate requirements
func TestValidateCertAndKeyRequired(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "valid with files",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "valid with content",
			tls: TLSConfig{
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
			expectError: false,
		},
		{
			name: "valid with mixed sources",
			tls: TLSConfig{
				CertFile:   "/path/to/cert.pem",
				KeyContent: "key-content",
			},
			expectError: false,
		},
		{
			name: "missing certificate",
			tls: TLSConfig{
				KeyFile: "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name: "missing key",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
			},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
		{
			name:        "missing both",
			tls:         TLSConfig{},
			expectError: true,
			errorMsg:    "TLS certificate and key are required for server mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCertAndKeyRequired(tt.tls)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateNoDuplicateCertSources tests duplicate source detection
func TestValidateNoDuplicateCertSources(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name: "files only",
			tls: TLSConfig{
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "content only",
			tls: TLSConfig{
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
			expectError: false,
		},
		{
			name: "duplicate cert sources",
			tls: TLSConfig{
				CertFile:    "/path/to/cert.pem",
				CertContent: "cert-content",
				KeyFile:     "/path/to/key.pem",
			},
			expectError: true,
			errorMsg:    "cannot specify both certFile and certContent",
		},
		{
			name: "duplicate key sources",
			tls: TLSConfig{
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				KeyContent: "key-content",
			},
			expectError: true,
			errorMsg:    "cannot specify both keyFile and keyContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNoDuplicateCertSources(tt.tls)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateTLSVersion tests minimum TLS version validation
func TestValidateTLSVersion(t *testing.T) {
	tests := []struct {
		name        string
		minVersion  string
		expectError bool
	}{
		{name: "empty defaults to 1.2", minVersion: "", expectError: false},
		{name: "explicit 1.2", minVersion: "1.2", expectError: false},
		{name: "explicit 1.3", minVersion: "1.3", expectError: false},
		{name: "unsupported 1.0", minVersion: "1.0", expectError: true},
		{name: "unsupported 1.1", minVersion: "1.1", expectError: true},
		{name: "garbage value", minVersion: "fast", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSVersion(TLSConfig{MinVersion: tt.minVersion})

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid TLS minVersion")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateTLSConfig tests the full validation entry point
func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
	}{
		{
			name:        "disabled mode passes without certs",
			tls:         TLSConfig{Mode: "disabled"},
			expectError: false,
		},
		{
			name: "server mode with certs and version",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.3",
			},
			expectError: false,
		},
		{
			name: "server mode without certs",
			tls: TLSConfig{
				Mode: "server",
			},
			expectError: true,
		},
		{
			name: "disabled mode with bad version",
			tls: TLSConfig{
				Mode:       "disabled",
				MinVersion: "1.1",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := cfg.ValidateTLSConfig()

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
