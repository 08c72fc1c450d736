// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"strings"

	"github.com/edunex/study-engine/pkg/types"
)

// ValidationKind identifies which local check a draft failed.
type ValidationKind string

const (
	MissingTitle   ValidationKind = "missing_title"
	InvalidURL     ValidationKind = "invalid_url"
	MissingContent ValidationKind = "missing_content"
	MissingFile    ValidationKind = "missing_file"
	FileTooLarge   ValidationKind = "file_too_large"
)

// ValidationError is a local, pre-network draft rejection. It is shown
// inline and never sent over the wire.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a draft against the local submission rules. It fails
// fast: the first violated rule is returned and nothing touches the
// network.
func Validate(draft types.ResourceDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return validationErr(MissingTitle, "a title is required")
	}

	switch draft.Kind {
	case types.KindLink:
		content := strings.TrimSpace(draft.Content)
		if content == "" || !strings.HasPrefix(content, "http") {
			return validationErr(InvalidURL, "a link must start with http:// or https://")
		}
	case types.KindText:
		if strings.TrimSpace(draft.Content) == "" {
			return validationErr(MissingContent, "text content is required")
		}
	case types.KindFile:
		if draft.File == nil || len(draft.File.Data) == 0 {
			return validationErr(MissingFile, "a file is required")
		}
		if len(draft.File.Data) > MaxFileSize {
			return validationErr(FileTooLarge, "file exceeds the %d MiB upload limit", MaxFileSize/(1<<20))
		}
	default:
		return validationErr(MissingContent, "unknown draft kind %q", draft.Kind)
	}
	return nil
}
