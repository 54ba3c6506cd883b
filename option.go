package funcly

import (
	"github.com/viant/afs/storage"
	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/policy"
	"github.com/viant/funcly/registry"
	dplan "github.com/viant/funcly/service/dao/plan"
	"github.com/viant/funcly/service/event"
	"github.com/viant/funcly/service/meta"
	"github.com/viant/funcly/service/runner"
	"github.com/viant/funcly/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service instance.
type Option func(s *Service)

// WithConfig replaces the default configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithRegistry mounts the service onto an existing registry instead of a
// fresh one, i.e. to share functions with other components.
func WithRegistry(aRegistry *registry.Registry) Option {
	return func(s *Service) {
		s.registry = aRegistry
	}
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithExtensionServices sets the extension action services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithPlanDAO sets the plan DAO
func WithPlanDAO(dao *dplan.Service) Option {
	return func(s *Service) {
		s.planDAO = dao
	}
}

// WithPolicy sets the execution policy applied to runs started without
// one in their context
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithRunnerOptions lets the caller supply additional options passed to
// runner.NewService (e.g. disabling the default StdoutListener).
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(s *Service) {
		s.runnerOptions = append(s.runnerOptions, opts...)
	}
}

// WithoutBuiltins skips registration of the stock function groups
func WithoutBuiltins() Option {
	return func(s *Service) {
		s.disableBuiltins = true
	}
}

// WithMetaBaseURL sets the meta base URL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The function is
// safe to call multiple times – the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter. This enables
// integrations with exporters other than the built-in stdout exporter, for example OTLP, Jaeger or
// Zipkin. The function is safe to call multiple times – the first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
