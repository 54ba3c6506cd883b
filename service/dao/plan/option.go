package plan

import "github.com/viant/funcly/service/meta"

type Option func(*Service)

// WithMetaService sets the meta service
func WithMetaService(metaService *meta.Service) Option {
	return func(s *Service) {
		s.metaService = metaService
	}
}
