package ingest

// Source names used in import logs and API responses.
const (
	SourceSheet  = "sheet"
	SourceGarmin = "garmin"
)

// Result holds the outcome of an ingest operation.
type Result struct {
	RowsReceived int   `json:"rows_received"`
	RowsInserted int64 `json:"rows_inserted"`
	RowsSkipped  int64 `json:"rows_skipped"`

	// TokensDropped counts non-numeric rep or weight tokens the notation
	// parser discarded. Dropped tokens are tolerated, not errors, but the
	// count surfaces data-quality problems in the source sheet.
	TokensDropped int `json:"tokens_dropped,omitempty"`

	ActivitiesReceived int `json:"activities_received,omitempty"`
	ActivitiesIngested int `json:"activities_ingested,omitempty"`

	Message string `json:"message,omitempty"`
}
