package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ddenisova/targbulk/internal/constant"
	"github.com/ddenisova/targbulk/internal/models"
	"github.com/ddenisova/targbulk/internal/repository"
)

// Importer runs the create path: one remote create call per valid row of
// a validated upload, sequential, in file order.
type Importer struct {
	client repository.Client
	logger *logrus.Logger
}

func NewImporter(client repository.Client, logger *logrus.Logger) *Importer {
	return &Importer{client: client, logger: logger}
}

// Run fetches the reference snapshots and processes every data row. A
// single row's failure never stops the pass; reference-load failures
// abort the whole action. The table must already be validated, so the
// reference endpoints are only hit for well-formed uploads.
func (im *Importer) Run(ctx context.Context, table *Table, loc *time.Location) (*models.ImportSummary, error) {
	types, err := im.client.ListCalendarTypes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load calendar types")
	}
	typeByName := make(map[string]string, len(types))
	for _, t := range types {
		typeByName[t.Name] = t.ID
	}

	employees, err := im.client.ListEmployees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load employees")
	}
	index := BuildEmployeeIndex(employees)

	summary := &models.ImportSummary{
		Total:    table.Len(),
		Warnings: index.Warnings(),
	}
	for i := 0; i < table.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, "import aborted")
		}
		summary.Tally(im.processRow(ctx, i+1, table.Row(i), typeByName, index, loc))
	}

	im.logger.WithFields(logrus.Fields{
		"total":   summary.Total,
		"created": summary.Created,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("import finished")
	return summary, nil
}

func (im *Importer) processRow(ctx context.Context, rowNum int, row map[string]string,
	typeByName map[string]string, index *EmployeeIndex, loc *time.Location) models.Outcome {

	surname := row[constant.COL_SURNAME]
	first := row[constant.COL_FIRST_NAME]
	middle := row[constant.COL_MIDDLE_NAME]
	typeName := row[constant.COL_EVENT_TYPE]
	display := joinNameParts(surname, first, middle)

	if typeName == "" {
		return skipped(rowNum, fmt.Sprintf("no event type for %s", display))
	}

	start, err := ParseDayStart(row[constant.COL_START_DATE], loc)
	if err != nil {
		return skipped(rowNum, fmt.Sprintf("bad start date for %s: %v", display, err))
	}
	end, err := ParseDayEnd(row[constant.COL_END_DATE], loc)
	if err != nil {
		return skipped(rowNum, fmt.Sprintf("bad end date for %s: %v", display, err))
	}

	employeeID, key, ok := index.Resolve(surname, first, middle)
	if !ok {
		return skipped(rowNum, "employee not found: "+key)
	}

	typeID, ok := typeByName[typeName]
	if !ok {
		return skipped(rowNum, fmt.Sprintf("event type %q not found", typeName))
	}

	event := models.CalendarEvent{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		TypeID:     typeID,
		Start:      FormatWire(start),
		End:        FormatWire(end),
		AllDay:     true,
		Confirmed:  true,
		Comment:    constant.EVENT_COMMENT,
	}
	if err := im.client.CreateEvent(ctx, event); err != nil {
		if repository.IsTerminatedEmployee(err) {
			return skipped(rowNum, fmt.Sprintf("employee %s is terminated", key))
		}
		im.logger.WithError(err).WithField("row", rowNum).Warn("create event failed")
		return models.Outcome{
			Row:     rowNum,
			Status:  models.StatusFailed,
			Message: fmt.Sprintf("create failed for %s: %v", display, err),
		}
	}
	return models.Outcome{
		Row:     rowNum,
		Status:  models.StatusSuccess,
		Message: fmt.Sprintf("event created for %s", display),
	}
}

func skipped(row int, msg string) models.Outcome {
	return models.Outcome{Row: row, Status: models.StatusSkipped, Message: msg}
}
