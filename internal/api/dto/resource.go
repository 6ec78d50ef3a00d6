package dto

// InsertRequest is the raw record posted to /table/{name}; keys are column names.
type InsertRequest map[string]any

type InsertResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Record is one row of a table or view read, keyed by column name.
type Record map[string]any
