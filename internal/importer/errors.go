package importer

// errors.go maps technical errors to user-facing messages with support codes.
//
// Error codes are grouped by category:
//
//	FMT001 - Unsupported file format
//	FILE001 - File too large
//	FILE002 - Empty file
//	FILE003 - Encoding problem
//	TPL001 - Template not found
//	SES001 - Session not found
//	SES002 - Operation not allowed in the session's current state
//	ROW001 - Row index out of range
//	ROW002 - Unknown attribute name
//	CMT001 - No valid rows to commit
//	DB001  - Duplicate record
//	DB002  - Database unavailable
//	DB003  - Operation timed out
//	ERR000 - Fallback for unexpected errors
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones. When a user
// reports a code, support looks it up here and correlates with the request_id
// in the logs.

import "strings"

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv, .tsv, .txt, or .xlsx manifest",
			Code:    "FMT001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the upload size limit",
			Action:  "Split the manifest into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no header row",
			Action:  "Upload a manifest with a header and at least one trip row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid utf-8",
		msg: UserMessage{
			Message: "The file contains characters that could not be read",
			Action:  "Re-export the manifest as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "template not found",
		msg: UserMessage{
			Message: "The selected partner format does not exist",
			Action:  "Pick a format from the template list",
			Code:    "TPL001",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "This import session has expired or does not exist",
			Action:  "Start a new import",
			Code:    "SES001",
		},
	},
	{
		pattern: "invalid session transition",
		msg: UserMessage{
			Message: "That action is not available at this step of the import",
			Action:  "Refresh the import and continue from its current step",
			Code:    "SES002",
		},
	},
	{
		pattern: "row index out of range",
		msg: UserMessage{
			Message: "The edited row no longer exists",
			Action:  "Reload the review grid and retry the edit",
			Code:    "ROW001",
		},
	},
	{
		pattern: "unknown attribute",
		msg: UserMessage{
			Message: "The edited column is not a recognized trip field",
			Action:  "Reload the review grid and retry the edit",
			Code:    "ROW002",
		},
	},
	{
		pattern: "no valid rows",
		msg: UserMessage{
			Message: "No rows are eligible to import",
			Action:  "Correct the rows flagged in review, then commit again",
			Code:    "CMT001",
		},
	},
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A duplicate record was found while importing",
			Action:  "Check whether this manifest was already imported",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the database",
			Action:  "Please try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller manifest or try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller manifest or try again later",
			Code:    "DB003",
		},
	},
}

// MapError converts a technical error to a user-friendly message.
// Unknown errors get a generic message with code ERR000; the technical detail
// stays in the server logs.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support with the request ID",
		Code:    "ERR000",
	}
}
