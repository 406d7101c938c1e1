package models

// EmployeeName is the structured name the employee directory returns.
// Any of the parts may be empty.
type EmployeeName struct {
	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
}

// Employee is a read-only snapshot of one directory entry.
type Employee struct {
	ID          string       `json:"id"`
	Name        EmployeeName `json:"name"`
	LocationIDs []string     `json:"locationIds"`
}

// CalendarType is one named event category (vacation, sick leave, ...).
type CalendarType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is a named site grouping employees.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CalendarEvent is the create-event payload.
type CalendarEvent struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	TypeID     string `json:"typeId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	AllDay     bool   `json:"allDay"`
	Confirmed  bool   `json:"confirmed"`
	Comment    string `json:"comment"`
}

// EventRange bounds an event query, both instants UTC.
type EventRange struct {
	Since string `json:"since"`
	UpTo  string `json:"upTo"`
}

// EventQuery selects events of the given employees inside the range.
type EventQuery struct {
	Range       EventRange `json:"range"`
	EmployeeIDs []string   `json:"employeeIds"`
}

// RemoteEvent is the slice of a queried event this tool cares about.
type RemoteEvent struct {
	ID string `json:"id"`
}
