package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ddenisova/targbulk/internal/models"
	"github.com/ddenisova/targbulk/internal/repository"
)

// ErrLocationNotFound marks a location name with no exact match in the
// remote location list.
var ErrLocationNotFound = errors.New("location not found")

// Purger runs the delete path: resolve a location to its employees,
// query their events in range and delete each one individually.
type Purger struct {
	client repository.Client
	logger *logrus.Logger
}

func NewPurger(client repository.Client, logger *logrus.Logger) *Purger {
	return &Purger{client: client, logger: logger}
}

// Run deletes every event of the location's employees inside [since,
// upTo]. Zero matching employees or zero events is informational, not an
// error; a failed delete never blocks the remaining ones.
func (p *Purger) Run(ctx context.Context, locationName string, since, upTo time.Time) (*models.PurgeSummary, error) {
	locations, err := p.client.ListLocations(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load locations")
	}
	locationID := ""
	for _, l := range locations {
		if l.Name == locationName {
			locationID = l.ID
			break
		}
	}
	if locationID == "" {
		return nil, errors.Wrapf(ErrLocationNotFound, "%q", locationName)
	}

	employees, err := p.client.ListEmployees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load employees")
	}
	var employeeIDs []string
	for _, emp := range employees {
		for _, id := range emp.LocationIDs {
			if id == locationID {
				employeeIDs = append(employeeIDs, emp.ID)
				break
			}
		}
	}

	summary := &models.PurgeSummary{LocationID: locationID, Employees: len(employeeIDs)}
	if len(employeeIDs) == 0 {
		summary.Note = fmt.Sprintf("no employees at location %q, nothing deleted", locationName)
		return summary, nil
	}

	events, err := p.client.QueryEvents(ctx, models.EventQuery{
		Range:       models.EventRange{Since: FormatWire(since), UpTo: FormatWire(upTo)},
		EmployeeIDs: employeeIDs,
	})
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	summary.Matched = len(events)
	if len(events) == 0 {
		summary.Note = "no events in the selected range"
		return summary, nil
	}

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "purge aborted")
		}
		if err := p.client.DeleteEvent(ctx, ev.ID); err != nil {
			p.logger.WithError(err).WithField("event", ev.ID).Warn("delete event failed")
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, models.Outcome{
				Status:  models.StatusFailed,
				Message: fmt.Sprintf("delete failed for event %s: %v", ev.ID, err),
			})
			continue
		}
		summary.Deleted++
		summary.Outcomes = append(summary.Outcomes, models.Outcome{
			Status:  models.StatusSuccess,
			Message: fmt.Sprintf("event %s deleted", ev.ID),
		})
	}

	p.logger.WithFields(logrus.Fields{
		"location": locationID,
		"matched":  summary.Matched,
		"deleted":  summary.Deleted,
		"failed":   summary.Failed,
	}).Info("purge finished")
	return summary, nil
}
