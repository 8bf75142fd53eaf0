package types

// SuccessEnvelope is the shape every 2xx body takes. Data is always
// serialized, even when nil, so clients can rely on the key.
type SuccessEnvelope struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Message    string   `json:"message"`
	StatusCode int      `json:"statusCode"`
	Error      APIError `json:"error"`
}
