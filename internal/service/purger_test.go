package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ddenisova/targbulk/internal/models"
)

func locatedEmployee(id, locationID string) models.Employee {
	return models.Employee{
		ID:          id,
		Name:        models.EmployeeName{LastName: "X"},
		LocationIDs: []string{locationID},
	}
}

func purgeBounds(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	since, upTo, err := PurgeWindow("01/07/25", "14/07/25", mustZone(t, "Europe/Moscow"))
	require.NoError(t, err)
	return since, upTo
}

func TestPurgeDeletesEachEventIndividually(t *testing.T) {
	client := &fakeClient{
		locations: []models.Location{{ID: "loc-1", Name: "Склад"}},
		employees: []models.Employee{
			locatedEmployee("e1", "loc-1"),
			locatedEmployee("e2", "loc-1"),
			locatedEmployee("e3", "loc-other"),
		},
		events: []models.RemoteEvent{{ID: "ev-1"}, {ID: "ev-2"}},
	}
	since, upTo := purgeBounds(t)

	summary, err := NewPurger(client, quietLogger()).Run(context.Background(), "Склад", since, upTo)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Employees)
	require.Equal(t, 2, summary.Matched)
	require.Equal(t, 2, summary.Deleted)
	require.Equal(t, []string{"ev-1", "ev-2"}, client.deleted)

	require.Len(t, client.queries, 1)
	q := client.queries[0]
	require.ElementsMatch(t, []string{"e1", "e2"}, q.EmployeeIDs)
	require.Equal(t, "2025-06-30T21:00:00.000000Z", q.Range.Since)
	require.Equal(t, "2025-07-14T20:59:59.999999Z", q.Range.UpTo)
}

func TestPurgeZeroEmployeesIsInformational(t *testing.T) {
	client := &fakeClient{
		locations: []models.Location{{ID: "loc-1", Name: "Склад"}},
		employees: []models.Employee{locatedEmployee("e1", "loc-other")},
	}
	since, upTo := purgeBounds(t)

	summary, err := NewPurger(client, quietLogger()).Run(context.Background(), "Склад", since, upTo)
	require.NoError(t, err)
	require.Zero(t, summary.Employees)
	require.NotEmpty(t, summary.Note)
	require.Empty(t, client.queries)
	require.Empty(t, client.deleted)
}

func TestPurgeEmptyEventSetIsNotAnError(t *testing.T) {
	client := &fakeClient{
		locations: []models.Location{{ID: "loc-1", Name: "Склад"}},
		employees: []models.Employee{locatedEmployee("e1", "loc-1")},
	}
	since, upTo := purgeBounds(t)

	summary, err := NewPurger(client, quietLogger()).Run(context.Background(), "Склад", since, upTo)
	require.NoError(t, err)
	require.Zero(t, summary.Matched)
	require.NotEmpty(t, summary.Note)
}

func TestPurgeUnknownLocation(t *testing.T) {
	client := &fakeClient{
		locations: []models.Location{{ID: "loc-1", Name: "Склад"}},
	}
	since, upTo := purgeBounds(t)

	_, err := NewPurger(client, quietLogger()).Run(context.Background(), "Офис", since, upTo)
	require.True(t, errors.Is(err, ErrLocationNotFound))
}

func TestPurgeFailureDoesNotBlockRemainingDeletes(t *testing.T) {
	client := &fakeClient{
		locations: []models.Location{{ID: "loc-1", Name: "Склад"}},
		employees: []models.Employee{locatedEmployee("e1", "loc-1")},
		events:    []models.RemoteEvent{{ID: "ev-1"}, {ID: "ev-2"}, {ID: "ev-3"}},
		deleteErr: map[string]error{"ev-2": errors.New("boom")},
	}
	since, upTo := purgeBounds(t)

	summary, err := NewPurger(client, quietLogger()).Run(context.Background(), "Склад", since, upTo)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Deleted)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, []string{"ev-1", "ev-3"}, client.deleted)
}
