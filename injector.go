package ninject

import (
	"github.com/muir/nject"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/muir/ninject/store"
)

// Injector carries the configuration that the decorators read from.
// It is the only place a store is installed; pass it to whatever needs
// injection.
//
// Injectors are not synchronized.  Install the store (New or SetStore)
// before decorated functions and classes are used and do not call
// SetStore while they are running.  Concurrent reads are fine.
type Injector struct {
	store         store.Store
	logger        *zap.Logger
	level         zap.AtomicLevel
	debug         bool
	meterProvider metric.MeterProvider
	metrics       *metrics
	onMissing     func(*Injector, Section) error
}

// Section is the type under which the name of a configuration section
// is provided to OnMissingSection callbacks.
type Section string

type Option func(*Injector) error

// WithLogger replaces the default production JSON logger.
func WithLogger(logger *zap.Logger) Option {
	return func(in *Injector) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		in.logger = logger
		return nil
	}
}

// WithMeterProvider selects where counters are registered.  The default
// is the global OpenTelemetry provider at the time New is called.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(in *Injector) error {
		in.meterProvider = mp
		return nil
	}
}

// OnMissingSection adds a callback chain, run by github.com/muir/nject,
// that is invoked when a decorated function or struct names a section
// the store does not have.  The chain can consume *Injector and Section.
// The last function may return error; a non-nil error is logged.
// A warning is logged whether or not there is a chain.
//
//	ninject.OnMissingSection(func(s ninject.Section) error {
//		return errors.Errorf("section %s is required", s)
//	})
func OnMissingSection(chain ...interface{}) Option {
	return func(in *Injector) error {
		return nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-missing-section", chain...).Bind(&in.onMissing, nil)
	}
}

// New creates an Injector reading from s.  A nil store is treated as
// an empty one.
func New(s store.Store, opts ...Option) (*Injector, error) {
	in := &Injector{
		level: zap.NewAtomicLevelAt(defaultLevel),
	}
	for _, f := range opts {
		err := f(in)
		if err != nil {
			return nil, errors.Wrap(err, "injector option")
		}
	}
	if in.logger == nil {
		logger, err := newLogger()
		if err != nil {
			return nil, err
		}
		in.logger = logger
	}
	if in.meterProvider == nil {
		in.meterProvider = otel.GetMeterProvider()
	}
	m, err := newMetrics(in.meterProvider)
	if err != nil {
		return nil, errors.Wrap(err, "register metrics")
	}
	in.metrics = m
	in.SetStore(s)
	return in, nil
}

// SetStore installs a store and re-reads the injector's own settings
// from its SettingsSection.
func (in *Injector) SetStore(s store.Store) {
	if s == nil {
		s = store.NewMap()
	}
	in.store = s
	conf := readSettings(s)
	in.debug = conf.debug
	in.level.SetLevel(conf.level)
	in.trace("installed configuration store",
		zap.Bool("debug", in.debug),
		zap.Stringer("level", conf.level))
}

func (in *Injector) Store() store.Store { return in.store }

// Debug reports whether tracing of injected values is on.
func (in *Injector) Debug() bool { return in.debug }

func (in *Injector) Logger() *zap.Logger { return in.logger }

// LogLevel is the level set from the store.  Messages below it are
// dropped and tracing is written at it.
func (in *Injector) LogLevel() zap.AtomicLevel { return in.level }

func (in *Injector) missingSection(section string) {
	in.log(zap.WarnLevel, "no section found", zap.String("section", section))
	in.metrics.missingSection(section)
	if in.onMissing == nil {
		return
	}
	err := in.onMissing(in, Section(section))
	if err != nil {
		in.log(zap.ErrorLevel, "missing section callback failed",
			zap.String("section", section),
			zap.Error(err))
	}
}
