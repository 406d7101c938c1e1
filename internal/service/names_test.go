package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ddenisova/targbulk/internal/models"
)

func employee(id, last, first, middle string) models.Employee {
	return models.Employee{
		ID:   id,
		Name: models.EmployeeName{LastName: last, FirstName: first, MiddleName: middle},
	}
}

func TestIndexRegistersKeyVariants(t *testing.T) {
	idx := BuildEmployeeIndex([]models.Employee{
		employee("e1", "Иванов", "Александр", "Константинович"),
		employee("e2", "Петрова", "Виктория", ""),
		employee("e3", "Сидорова", "", ""),
	})

	id, _, ok := idx.Resolve("Иванов", "Александр", "Константинович")
	require.True(t, ok)
	require.Equal(t, "e1", id)

	// full-name employees also answer to surname+first
	id, _, ok = idx.Resolve("Иванов", "Александр", "")
	require.True(t, ok)
	require.Equal(t, "e1", id)

	id, _, ok = idx.Resolve("Петрова", "Виктория", "")
	require.True(t, ok)
	require.Equal(t, "e2", id)

	id, _, ok = idx.Resolve("Сидорова", "", "")
	require.True(t, ok)
	require.Equal(t, "e3", id)
}

func TestSurnameOnlyKeyNeedsBareEmployee(t *testing.T) {
	idx := BuildEmployeeIndex([]models.Employee{
		employee("e1", "Иванов", "Александр", ""),
	})

	// a surname-only row never matches an employee who has a first name
	_, key, ok := idx.Resolve("Иванов", "", "")
	require.False(t, ok)
	require.Equal(t, "Иванов", key)

	// and a surname+first row never matches a bare-surname registration
	idx = BuildEmployeeIndex([]models.Employee{
		employee("e2", "Иванов", "", ""),
	})
	_, _, ok = idx.Resolve("Иванов", "Александр", "")
	require.False(t, ok)
}

func TestEmptySurnameExcludedWithWarning(t *testing.T) {
	idx := BuildEmployeeIndex([]models.Employee{
		employee("e1", "   ", "Анна", ""),
		employee("e2", "Петрова", "Анна", ""),
	})

	require.Equal(t, 1, idx.Len())
	require.Len(t, idx.Warnings(), 1)
	require.Contains(t, idx.Warnings()[0], "e1")
}

func TestCollisionFirstRegisteredWins(t *testing.T) {
	idx := BuildEmployeeIndex([]models.Employee{
		employee("e1", "Иванов", "Иван", ""),
		employee("e2", "Иванов", "Иван", ""),
	})

	id, _, ok := idx.Resolve("Иванов", "Иван", "")
	require.True(t, ok)
	require.Equal(t, "e1", id)
	require.Len(t, idx.Warnings(), 1)
	require.Contains(t, idx.Warnings()[0], "Иванов Иван")
}

func TestResolveIsIdempotent(t *testing.T) {
	idx := BuildEmployeeIndex([]models.Employee{
		employee("e1", "Погребович", "Екатерина", "Александровна"),
	})

	first, key1, ok1 := idx.Resolve("Погребович", "Екатерина", "Александровна")
	second, key2, ok2 := idx.Resolve("Погребович", "Екатерина", "Александровна")
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, first, second)
	require.Equal(t, key1, key2)
}

func TestRowKeyPrecedence(t *testing.T) {
	require.Equal(t, "Иванов Александр Константинович", RowKey("Иванов", "Александр", "Константинович"))
	require.Equal(t, "Иванов Александр", RowKey("Иванов", "Александр", ""))
	require.Equal(t, "Иванов", RowKey(" Иванов ", "", ""))
}
