package constant

const (
	// Remote API paths, relative to the tenant base URL
	PATH_CALENDAR_TYPES = "/external/api/employee-schedules/calendar/types"
	PATH_EMPLOYEES      = "/external/api/employees/query"
	PATH_LOCATIONS      = "/external/api/locations"
	PATH_CREATE_EVENT   = "/external/api/employee-schedules/calendar/create"
	PATH_QUERY_EVENTS   = "/external/api/employee-schedules/calendar/query"
	PATH_DELETE_EVENT   = "/external/api/employee-schedules/calendar"

	// Headers
	API_KEY_HEADER       = "X-API-Key"
	SESSION_TOKEN_HEADER = "X-Session-Token"

	// Accepted upload date formats, tried in order
	DATE_FORMAT_SHORT = "02/01/06"
	DATE_FORMAT_LONG  = "02/01/2006"

	// Timestamps sent to the remote API: UTC with microsecond precision
	WIRE_TIME_FORMAT = "2006-01-02T15:04:05.000000Z"

	// Column headers of the uploaded table. The headers are part of the
	// file contract with the operators and stay localized.
	COL_SURNAME     = "Фамилия"
	COL_FIRST_NAME  = "Имя"
	COL_MIDDLE_NAME = "Отчество"
	COL_EVENT_TYPE  = "Тип"
	COL_START_DATE  = "Дата1"
	COL_END_DATE    = "Дата2"

	// Comment attached to every created event
	EVENT_COMMENT = "Запланировано автоматически (массовая загрузка)"

	// Substrings of a 400 response body that mark a terminated employee.
	// The API answers in English or Russian depending on tenant settings.
	TERMINATED_MARKER_EN = "dismiss"
	TERMINATED_MARKER_RU = "увол"
)
