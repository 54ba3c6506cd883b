// Package meta loads declarative assets such as call plans from any
// location the afs virtual file system can reach: local files, embedded
// file systems, in-memory or cloud storage. Loaded documents have
// ${env.KEY} expressions expanded before decoding.
package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service resolves and decodes assets relative to an optional base URL
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
}

// New creates a meta service. baseURL may be empty, in which case asset
// locations are used verbatim; fsOptions are passed to every storage
// operation, i.e. an embed.FS option.
func New(fs afs.Service, baseURL string, fsOptions ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, fsOptions: fsOptions}
}

// BaseURL returns the configured base URL
func (s *Service) BaseURL() string {
	return s.baseURL
}

// ResolveURL joins a relative asset location with the base URL; absolute
// locations and locations with an explicit scheme pass through unchanged.
func (s *Service) ResolveURL(location string) string {
	if s.baseURL == "" || strings.Contains(location, "://") || strings.HasPrefix(location, "/") {
		return location
	}
	return url.Join(s.baseURL, location)
}

// Download fetches raw asset bytes with ${env.KEY} expressions expanded
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.ResolveURL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL, s.fsOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return []byte(expandEnvExpr(string(data))), nil
}

// Load fetches an asset and decodes its YAML into target, which may be a
// *yaml.Node to preserve document order.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.ResolveURL(location), err)
	}
	return nil
}

// Exists reports whether an asset is present at the location
func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	return s.fs.Exists(ctx, s.ResolveURL(location), s.fsOptions...)
}
