package transport

import "go.trai.ch/genie/internal/core/domain"

// ClassifyStatusForTest exports classifyStatus for testing purposes.
func ClassifyStatusForTest(status int, body []byte) *domain.RequestError {
	return classifyStatus(status, body)
}
