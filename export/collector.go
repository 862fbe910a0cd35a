package export

import (
	"context"

	"go.uber.org/zap"
)

// Collector enumerates the members of a partition into UserRecords.
type Collector struct {
	logger *zap.Logger
}

// NewCollector returns a Collector. A nil logger disables logging.
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// Collect returns every member of p in provider order. The result is fully
// materialized; on a provider error no records are returned.
func (c *Collector) Collect(ctx context.Context, p Partition) ([]UserRecord, error) {
	members, err := p.Members(ctx)
	if err != nil {
		return nil, &DirectoryAccessError{Partition: p.Name(), Err: err}
	}

	records := make([]UserRecord, 0, len(members))
	for _, m := range members {
		records = append(records, NewUserRecord(m))
	}
	c.logger.Debug("collect.done", zap.String("partition", p.Name()), zap.Int("count", len(records)))
	return records, nil
}
