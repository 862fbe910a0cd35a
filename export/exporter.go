package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// State is a step of an export attempt.
type State string

const (
	StateIdle              State = "idle"
	StatePartitionResolved State = "partition_resolved"
	StateCollected         State = "collected"
	StateEmpty             State = "empty"
	StateBuilt             State = "built"
	StateNamed             State = "named"
	StateStored            State = "stored"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// Notices shown to the user for outcomes that write no file.
const NoticeSelectDomain = "Please select a domain first."

func noticeUnresolved(name string) string {
	return fmt.Sprintf("Domain name '%s' could not be resolved", name)
}

func noticeEmpty(name string) string {
	return fmt.Sprintf("Domain name '%s' contains no user accounts.", name)
}

// Result is the terminal outcome of an export attempt that did not fail hard.
type Result struct {
	State     State     `json:"status"`
	Partition string    `json:"domain,omitempty"`
	Notice    string    `json:"notice,omitempty"`
	Count     int       `json:"users,omitempty"`
	Reference Reference `json:"-"`
	Err       error     `json:"-"`
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time source used to name reports.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// Exporter runs the export pipeline for one partition at a time. It holds no
// state between calls.
type Exporter struct {
	resolver  Resolver
	collector *Collector
	store     ReportStore
	logger    *zap.Logger
	audit     *zap.Logger
	now       func() time.Time
}

// NewExporter wires an Exporter from its collaborators.
func NewExporter(resolver Resolver, store ReportStore, logger *zap.Logger, opts ...Option) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Exporter{
		resolver:  resolver,
		collector: NewCollector(logger),
		store:     store,
		logger:    logger,
		audit:     logger.Named("audit"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export collects the users of the named partition, renders them as a
// workbook and stores it.
//
// A blank name, an unknown partition and a partition without users are
// reported through Result with a nil error and no file written. Any other
// failure is logged and returned as is.
func (e *Exporter) Export(ctx context.Context, name string) (Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{State: StateIdle, Notice: NoticeSelectDomain}, nil
	}

	partition, err := e.resolver.ResolvePartition(ctx, name)
	if errors.Is(err, ErrPartitionNotFound) || (err == nil && partition == nil) {
		e.logger.Info("report.unresolved", zap.String("domain", name))
		return Result{
			State:     StateFailed,
			Partition: name,
			Notice:    noticeUnresolved(name),
			Err:       &UnresolvedPartitionError{Name: name},
		}, nil
	}
	if err != nil {
		return Result{}, e.fail(name, StateIdle, &DirectoryAccessError{Partition: name, Err: err})
	}

	e.audit.Info("report.generate", zap.String("domain", name))

	records, err := e.collector.Collect(ctx, partition)
	if err != nil {
		return Result{}, e.fail(name, StatePartitionResolved, err)
	}
	if len(records) == 0 {
		return Result{State: StateEmpty, Partition: name, Notice: noticeEmpty(name)}, nil
	}

	data, err := BuildWorkbook(records)
	if err != nil {
		return Result{}, e.fail(name, StateCollected, err)
	}

	filename := ReportName(name, e.now())
	e.audit.Info("report.export",
		zap.String("domain", name),
		zap.String("filename", filename),
		zap.Int("users", len(records)),
	)

	ref, err := e.store.Store(ctx, data, filename)
	if err != nil {
		return Result{}, e.fail(name, StateNamed, err)
	}

	e.logger.Info("report.stored", zap.String("domain", name), zap.String("location", ref.Location))
	return Result{
		State:     StateDone,
		Partition: name,
		Count:     len(records),
		Reference: ref,
	}, nil
}

func (e *Exporter) fail(name string, at State, err error) error {
	e.logger.Error("report.failed",
		zap.String("domain", name),
		zap.String("state", string(at)),
		zap.Error(err),
	)
	return err
}
