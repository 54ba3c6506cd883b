package funcly

import (
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/funcly/extension"
	"github.com/viant/funcly/model/types"
	"github.com/viant/funcly/policy"
	"github.com/viant/funcly/registry"
	"github.com/viant/funcly/service/action"
	"github.com/viant/funcly/service/action/input"
	"github.com/viant/funcly/service/action/nop"
	"github.com/viant/funcly/service/action/printer"
	"github.com/viant/funcly/service/builtin"
	dplan "github.com/viant/funcly/service/dao/plan"
	"github.com/viant/funcly/service/event"
	"github.com/viant/funcly/service/messaging"
	"github.com/viant/funcly/service/messaging/fs"
	"github.com/viant/funcly/service/meta"
	"github.com/viant/funcly/service/runner"

	"github.com/viant/x"
)

// Service is the high-level facade: a registry with builtin groups and
// mounted action services, a plan DAO and a runner, wired together by
// functional options.
type Service struct {
	runtime           *Runtime
	registry          *registry.Registry
	actions           *extension.Actions
	mounter           *action.Mounter
	metaService       *meta.Service
	planDAO           *dplan.Service
	runner            runner.Service
	eventService      *event.Service
	config            *Config
	policy            *policy.Policy
	extensionTypes    []*x.Type
	extensionServices []types.Service
	runnerOptions     []runner.Option
	metaBaseURL       string
	metaFsOptions     []storage.Option
	disableBuiltins   bool
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.actions = extension.NewActions(s.extensionTypes...)
	s.mounter = action.NewMounter(s.registry)

	if !s.disableBuiltins && !s.config.DisableBuiltins {
		if err := builtin.Register(s.registry); err != nil {
			return err
		}
	}
	s.actions.Register(printer.New())
	s.actions.Register(nop.New())
	s.actions.Register(input.New())
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	if err := s.mounter.MountAll(s.actions); err != nil {
		return err
	}

	runnerOptions := append([]runner.Option{
		runner.WithTypes(s.actions.Types()),
		runner.WithEventService(s.eventService),
	}, s.runnerOptions...)
	s.runner = runner.NewService(s.registry, runnerOptions...)
	s.runtime = &Runtime{
		planDAO: s.planDAO,
		runner:  s.runner,
		events:  s.eventService,
		policy:  s.policy,
	}
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.registry == nil {
		s.registry = registry.New()
	}
	if s.metaService == nil {
		if s.metaBaseURL == "" {
			s.metaBaseURL = s.config.Meta.BaseURL
		}
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.planDAO == nil {
		s.planDAO = dplan.New(dplan.WithMetaService(s.metaService))
	}
	if s.eventService == nil && s.config.Events.Vendor != "" {
		var eventOptions []event.Option
		if baseURL := s.config.Events.BaseURL; baseURL != "" {
			eventOptions = append(eventOptions, event.WithNewFsQueueConfig(func(name string) fs.Config {
				return fs.Config{BaseURL: url.Join(baseURL, name)}
			}))
		}
		eventService, err := event.New(messaging.Vendor(s.config.Events.Vendor), eventOptions...)
		if err != nil {
			return fmt.Errorf("failed to create event service: %w", err)
		}
		s.eventService = eventService
	}
	if s.policy == nil && s.config.Policy != nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
	return nil
}

// Registry returns the function registry
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// Runtime returns the plan runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Events returns the event service, or nil when events are disabled
func (s *Service) Events() *event.Service {
	return s.eventService
}

// RegisterExtensionTypes registers payload types after construction
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers and mounts action services after
// construction
func (s *Service) RegisterExtensionServices(services ...types.Service) error {
	for i := range services {
		s.actions.Register(services[i])
		if err := s.mounter.Mount(services[i]); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops the event listeners
func (s *Service) Shutdown() {
	if s.eventService != nil {
		s.eventService.Shutdown()
	}
}

// New creates a service with the supplied options.
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
