package mcp

import (
	"errors"
	"fmt"

	"github.com/faridfgx/projectorganizer/internal/backup"
	"github.com/faridfgx/projectorganizer/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Names are case-sensitive; list_projects shows what exists"}
	case errors.Is(err, project.ErrDuplicateName):
		return &APIError{Code: "DUPLICATE_NAME", Message: err.Error(), RecoveryHint: "Pick a different name or update the existing project"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "A non-blank name is required"}
	case errors.Is(err, backup.ErrNoDataFile):
		return &APIError{Code: "NO_DATA_FILE", Message: err.Error(), RecoveryHint: "Add a project first so there is data to back up"}
	case errors.Is(err, backup.ErrInvalidBackup):
		return &APIError{Code: "INVALID_BACKUP", Message: err.Error(), RecoveryHint: "The current data was left untouched"}
	default:
		return err
	}
}
