package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"dashboard/internal/core/domain/model/feed"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/core/ports"
	"dashboard/internal/pkg/errs"
	"dashboard/internal/pkg/eventloop"

	"github.com/robfig/cron/v3"
)

// DefaultSummarySchedule runs the summary every 30 seconds.
const DefaultSummarySchedule = "*/30 * * * * *"

var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Summary is a point-in-time view of the dashboard.
type Summary struct {
	Total      int
	ByStatus   map[order.Status]int
	Connection feed.ConnectionStatus
	Attempt    int
}

// DashboardSummaryJob periodically logs how many orders are in each status
// and whether the realtime feed is connected.
type DashboardSummaryJob struct {
	executor eventloop.Executor
	reader   ports.OrderReader
	monitor  ports.ConnectionMonitor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDashboardSummaryJob creates the job. schedule is a six-field cron
// expression with seconds.
func NewDashboardSummaryJob(
	executor eventloop.Executor,
	reader ports.OrderReader,
	monitor ports.ConnectionMonitor,
	schedule string,
	logger *slog.Logger,
) (*DashboardSummaryJob, error) {
	if executor == nil {
		return nil, errs.NewValueIsRequiredError("executor")
	}
	if reader == nil {
		return nil, errs.NewValueIsRequiredError("order reader")
	}
	if monitor == nil {
		return nil, errs.NewValueIsRequiredError("connection monitor")
	}
	if schedule == "" {
		schedule = DefaultSummarySchedule
	}
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("summary schedule", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardSummaryJob{
		executor: executor,
		reader:   reader,
		monitor:  monitor,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
		logger:   logger.With("component", "dashboard_summary_job"),
	}, nil
}

// Start begins running the job on its schedule.
func (j *DashboardSummaryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		summary, err := j.Summarize(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Dashboard summary job failed", "error", err)
			return
		}
		j.log(ctx, summary)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dashboard summary job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job and waits for a running summary to finish.
func (j *DashboardSummaryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dashboard summary job stopped")
}

// Summarize collects the summary on the event loop.
func (j *DashboardSummaryJob) Summarize(ctx context.Context) (Summary, error) {
	var summary Summary
	err := j.executor.Do(ctx, func() {
		orders := j.reader.Snapshot()
		summary = Summary{
			Total:      len(orders),
			ByStatus:   make(map[order.Status]int, len(order.All())),
			Connection: j.monitor.Status(),
			Attempt:    j.monitor.Attempt(),
		}
		for _, o := range orders {
			summary.ByStatus[o.Status()]++
		}
	})
	if err != nil {
		return Summary{}, fmt.Errorf("collect dashboard summary: %w", err)
	}
	return summary, nil
}

func (j *DashboardSummaryJob) log(ctx context.Context, summary Summary) {
	attrs := []any{
		"total", summary.Total,
		"connection", summary.Connection.String(),
		"attempt", summary.Attempt,
	}
	for _, status := range order.All() {
		attrs = append(attrs, status.String(), summary.ByStatus[status])
	}
	j.logger.InfoContext(ctx, "Dashboard summary", attrs...)
}
