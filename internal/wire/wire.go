// Package wire defines the HTTP/JSON request and response shapes exchanged
// between the master and a worker, per spec section 6.2.
package wire

// Status is the verdict a worker returns for one crack-range call.
type Status string

const (
	StatusFound        Status = "FOUND"
	StatusNotFound     Status = "NOT_FOUND"
	StatusCancelled    Status = "CANCELLED"
	StatusError        Status = "ERROR"
	StatusInvalidInput Status = "INVALID_INPUT"
)

// Range is an inclusive index sub-range of a password scheme's keyspace.
type Range struct {
	StartIndex int64 `json:"start_index"`
	EndIndex   int64 `json:"end_index"`
}

// CrackRequest is the body of POST /crack-range.
type CrackRequest struct {
	Hash           string `json:"hash"`
	HashType       string `json:"hash_type"`
	PasswordScheme string `json:"password_scheme"`
	Range          Range  `json:"range"`
	JobID          string `json:"job_id"`
	RequestID      string `json:"request_id"`
}

// CrackResponse is the body returned from POST /crack-range.
type CrackResponse struct {
	Status              Status  `json:"status"`
	FoundPassword       *string `json:"found_password"`
	LastIndexProcessed  int64   `json:"last_index_processed"`
	ErrorMessage        *string `json:"error_message"`
}

// CancelRequest is the body of POST /cancel-job.
type CancelRequest struct {
	JobID string `json:"job_id"`
}

// CancelResponse is the body returned from POST /cancel-job.
type CancelResponse struct {
	Status string  `json:"status"`
	Error  *string `json:"error,omitempty"`
}

// HealthResponse is the body returned from GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
