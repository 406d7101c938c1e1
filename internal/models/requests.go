package models

// OpenSessionRequest opens an operator session. The API key is kept in
// process memory only for the lifetime of the session.
type OpenSessionRequest struct {
	APIKey   string `json:"apiKey" validate:"required"`
	Timezone string `json:"timezone" validate:"required"`
}

// OpenSessionResponse returns the token later requests authenticate with.
type OpenSessionResponse struct {
	Token    string `json:"token"`
	Timezone string `json:"timezone"`
}

// PurgeRequest selects the events to delete: all events of the location's
// employees between From and To (inclusive days, DD/MM/YY or DD/MM/YYYY).
type PurgeRequest struct {
	Location string `json:"location" validate:"required"`
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
}
