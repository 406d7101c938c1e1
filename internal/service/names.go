package service

import (
	"fmt"
	"strings"

	"github.com/ddenisova/targbulk/internal/models"
)

// EmployeeIndex resolves composite full-name keys to employee ids.
// Matching is exact: case-sensitive, single-space separated.
type EmployeeIndex struct {
	byKey    map[string]string
	warnings []string
}

// BuildEmployeeIndex registers up to three keys per employee:
//
//	"last first middle"  when the middle name is non-empty
//	"last first"         when the first name is non-empty
//	"last"               only when both first and middle are empty
//
// Employees without a surname are excluded and reported as data-quality
// warnings. On key collisions the first registered employee wins; later
// duplicates are reported, never silently replaced.
func BuildEmployeeIndex(employees []models.Employee) *EmployeeIndex {
	idx := &EmployeeIndex{byKey: make(map[string]string, len(employees))}
	for _, emp := range employees {
		last := strings.TrimSpace(emp.Name.LastName)
		first := strings.TrimSpace(emp.Name.FirstName)
		middle := strings.TrimSpace(emp.Name.MiddleName)

		if last == "" {
			idx.warnings = append(idx.warnings,
				fmt.Sprintf("employee %s excluded: empty surname", emp.ID))
			continue
		}
		if middle != "" {
			idx.register(joinNameParts(last, first, middle), emp.ID)
		}
		if first != "" {
			idx.register(joinNameParts(last, first), emp.ID)
		}
		if first == "" && middle == "" {
			idx.register(last, emp.ID)
		}
	}
	return idx
}

func (ix *EmployeeIndex) register(key, id string) {
	if prev, ok := ix.byKey[key]; ok {
		if prev != id {
			ix.warnings = append(ix.warnings,
				fmt.Sprintf("duplicate name %q: keeping the first registered employee", key))
		}
		return
	}
	ix.byKey[key] = id
}

// Resolve maps one uploaded row's name fields to an employee id. The
// returned key is the composite string that was looked up, for messages.
func (ix *EmployeeIndex) Resolve(surname, first, middle string) (id, key string, ok bool) {
	key = RowKey(surname, first, middle)
	id, ok = ix.byKey[key]
	return id, key, ok
}

// Warnings returns the data-quality notes collected while indexing.
func (ix *EmployeeIndex) Warnings() []string { return ix.warnings }

// Len returns the number of registered keys.
func (ix *EmployeeIndex) Len() int { return len(ix.byKey) }

// RowKey mirrors the registration precedence on the row side: full name
// when a middle name is present, surname+first when only the first name
// is, surname alone otherwise.
func RowKey(surname, first, middle string) string {
	surname = strings.TrimSpace(surname)
	first = strings.TrimSpace(first)
	middle = strings.TrimSpace(middle)
	switch {
	case middle != "":
		return joinNameParts(surname, first, middle)
	case first != "":
		return joinNameParts(surname, first)
	default:
		return surname
	}
}

// joinNameParts joins the non-empty parts with single spaces.
func joinNameParts(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
