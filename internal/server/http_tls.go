package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"sync"
	"time"

	jobfitErrors "jobfit/internal/errors"
	"jobfit/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// configureTLS sets up TLS configuration based on the mode
func (s *Server) configureTLS(httpServer *http.Server, om *observability.ObservabilityManager) error {
	addr := httpServer.Addr

	switch s.TLSConfig.Mode {
	case "server":
		return s.configureServerTLS(httpServer, addr, om)
	case "", "disabled":
		fmt.Printf("Starting server on http://%s\n", addr)
		fmt.Println("TLS mode: Disabled (HTTP only)")
		return nil
	default:
		return fmt.Errorf("invalid TLS mode: %s (must be 'disabled' or 'server')", s.TLSConfig.Mode)
	}
}

// configureServerTLS sets up server-only TLS
func (s *Server) configureServerTLS(httpServer *http.Server, addr string, om *observability.ObservabilityManager) error {
	fmt.Printf("Starting server with HTTPS on https://%s\n", addr)

	tlsConfig := &tls.Config{}
	s.configureTLSVersion(tlsConfig)

	if s.TLSConfig.AutoReload {
		reloader, err := NewCertReloader(s.TLSConfig.CertFile, s.TLSConfig.KeyFile, om, s.Logger)
		if err != nil {
			return fmt.Errorf("failed to start certificate reloader: %w", err)
		}
		s.CertReloader = reloader
		tlsConfig.GetCertificate = reloader.GetCertificate
		fmt.Println("TLS auto-reload: ENABLED")
	} else {
		cert, err := tls.LoadX509KeyPair(s.TLSConfig.CertFile, s.TLSConfig.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load server cert/key: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	httpServer.TLSConfig = tlsConfig
	return nil
}

// configureTLSVersion sets the minimum TLS version
func (s *Server) configureTLSVersion(tlsConfig *tls.Config) {
	switch s.TLSConfig.MinVersion {
	case "1.3":
		tlsConfig.MinVersion = tls.VersionTLS13
	default:
		tlsConfig.MinVersion = tls.VersionTLS12
	}
}

// CertReloader serves the server certificate and reloads it when the
// underlying files change on disk.
type CertReloader struct {
	mu       sync.RWMutex
	cert     *tls.Certificate
	certFile string
	keyFile  string

	watcher     *fsnotify.Watcher
	done        chan struct{}
	reloadCount int64

	om     *observability.ObservabilityManager
	logger *jobfitErrors.Logger
}

// NewCertReloader loads the initial certificate and starts watching the
// certificate and key files for changes.
func NewCertReloader(certFile, keyFile string, om *observability.ObservabilityManager, logger *jobfitErrors.Logger) (*CertReloader, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial certificate: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	cr := &CertReloader{
		cert:     &cert,
		certFile: certFile,
		keyFile:  keyFile,
		watcher:  watcher,
		done:     make(chan struct{}),
		om:       om,
		logger:   logger,
	}

	for _, file := range []string{certFile, keyFile} {
		if err := watcher.Add(file); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", file, err)
		}
	}

	go cr.watchLoop()
	return cr, nil
}

// GetCertificate implements tls.Config.GetCertificate
func (cr *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.cert, nil
}

// ReloadCount returns the number of successful reloads
func (cr *CertReloader) ReloadCount() int64 {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.reloadCount
}

// CheckExpiry returns the time until the current certificate expires
func (cr *CertReloader) CheckExpiry() (time.Duration, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.cert == nil || len(cr.cert.Certificate) == 0 {
		return 0, fmt.Errorf("no certificate loaded")
	}

	leaf := cr.cert.Leaf
	if leaf == nil {
		parsed, err := x509.ParseCertificate(cr.cert.Certificate[0])
		if err != nil {
			return 0, fmt.Errorf("failed to parse certificate: %w", err)
		}
		leaf = parsed
	}

	return time.Until(leaf.NotAfter), nil
}

// Stop shuts down the file watcher
func (cr *CertReloader) Stop() error {
	close(cr.done)
	return cr.watcher.Close()
}

// watchLoop handles file change events. Editors and secret managers often
// replace files via rename, so the watch is re-added after such events.
func (cr *CertReloader) watchLoop() {
	// Debounce: cert and key usually change together, reloading once per
	// burst avoids serving a mismatched pair mid-rotation.
	var reloadTimer *time.Timer
	const debounce = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-cr.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Rename != 0 {
				_ = cr.watcher.Add(event.Name)
			}
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(debounce, cr.reload)
		case err, ok := <-cr.watcher.Errors:
			if !ok {
				return
			}
			cr.logger.Warn("Certificate watcher error", "error", err.Error())
		case <-cr.done:
			return
		}
	}
}

// reload loads the certificate pair from disk and swaps it in
func (cr *CertReloader) reload() {
	cert, err := tls.LoadX509KeyPair(cr.certFile, cr.keyFile)

	cr.mu.Lock()
	if err == nil {
		cr.cert = &cert
		cr.reloadCount++
	}
	cr.mu.Unlock()

	if cr.om != nil {
		cr.om.GetMetrics().RecordCertReload(context.Background(), err == nil)
	}

	if err != nil {
		cr.logger.LogError(err, "Failed to reload TLS certificates",
			"cert_file", cr.certFile)
		return
	}
	cr.logger.Info("TLS certificates reloaded",
		"cert_file", cr.certFile)
}
