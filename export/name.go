package export

import (
	"fmt"
	"time"
)

// reportTimeLayout is yyyy-MM-dd-hh-mm on a 12-hour clock.
const reportTimeLayout = "2006-01-02-03-04"

// ReportName derives the report file name for partition at ts. Names have
// minute granularity in UTC, so two exports in the same minute share a name.
func ReportName(partition string, ts time.Time) string {
	return fmt.Sprintf("UserReport-%s-%s.xlsx", partition, ts.UTC().Format(reportTimeLayout))
}
