// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that talk to the
// Edunex service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Uploads of large files ride
	// the same ceiling, so the default is generous (60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "study-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for the API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the Edunex API (e.g. "http://localhost:8000").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// LibraryConfig holds settings for the local resource library.
type LibraryConfig struct {
	// CacheDir is the directory holding the offline cache database.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// MaxResults is the default maximum number of offline search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// UploadConfig holds settings for resource submission.
type UploadConfig struct {
	// DefaultSubject is applied to drafts created without a subject.
	DefaultSubject string `json:"default_subject,omitempty" yaml:"default_subject,omitempty"`
}

// ProfileConfig identifies the local user. The backend does not yet return
// uploader identity, so normalized resources are stamped with this name.
type ProfileConfig struct {
	// Name is the display name recorded as uploader on fetched resources.
	Name string `json:"name" yaml:"name"`
}

// AppConfig groups all client configuration.
type AppConfig struct {
	Client  ClientConfig  `json:"client" yaml:"client"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Upload  UploadConfig  `json:"upload" yaml:"upload"`
	Profile ProfileConfig `json:"profile" yaml:"profile"`
}
