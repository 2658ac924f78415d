// Package jobs declares the payloads exchanged between the API service
// and the background worker. Task names derive from these type names,
// so producer and consumer must share them.
package jobs

// Thumbnail asks the worker to derive the size variants of an uploaded
// image.
type Thumbnail struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// WelcomeEmail asks the worker to greet a freshly registered user.
type WelcomeEmail struct {
	UserID string `json:"userId"`
}
