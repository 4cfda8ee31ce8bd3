package types

// HandlerResponse is the JSON document returned by every Lambda handler.
// Schedule-triggered reports fill Status and S3Key; the API-style handlers
// fill StatusCode and Body.
type HandlerResponse struct {
	StatusCode int    `json:"statusCode,omitempty"`
	Body       string `json:"body,omitempty"`
	Status     string `json:"status,omitempty"`
	S3Key      string `json:"s3_key,omitempty"`
}
