package models

import "time"

// AnalysisRequest is one batch of raw texts arriving on the request topic.
// The ingestion collaborator has already extracted the texts from whatever
// file format they came in.
type AnalysisRequest struct {
	BatchID     string    `json:"batch_id"`
	Source      string    `json:"source,omitempty"`
	Texts       []string  `json:"texts"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// AnalysisResultsEnvelope is the message published on the results topic
// once a batch has been processed.
type AnalysisResultsEnvelope struct {
	BatchID   string           `json:"batch_id"`
	Report    BatchReport      `json:"report"`
	Results   []AnalysisResult `json:"results"`
	Timestamp time.Time        `json:"timestamp"`
}
