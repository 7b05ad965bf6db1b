package importer

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "unsupported format", err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ".pdf"), wantCode: "FMT001"},
		{name: "file too large", err: fmt.Errorf("%w: 99 bytes", ErrFileTooLarge), wantCode: "FILE001"},
		{name: "empty file", err: ErrEmptyFile, wantCode: "FILE002"},
		{name: "template not found", err: fmt.Errorf("%w: mtm_daily", ErrTemplateNotFound), wantCode: "TPL001"},
		{name: "session not found", err: ErrSessionNotFound, wantCode: "SES001"},
		{name: "invalid transition", err: fmt.Errorf("%w: reviewing -> succeeded", ErrInvalidTransition), wantCode: "SES002"},
		{name: "row out of range", err: ErrRowOutOfRange, wantCode: "ROW001"},
		{name: "unknown attribute", err: ErrUnknownAttribute, wantCode: "ROW002"},
		{name: "no valid rows", err: ErrNoValidRows, wantCode: "CMT001"},
		{name: "duplicate key", err: errors.New(`duplicate key value violates unique constraint "trips_pkey"`), wantCode: "DB001"},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connection refused"), wantCode: "DB002"},
		{name: "deadline", err: errors.New("context deadline exceeded"), wantCode: "DB003"},
		{name: "case insensitive", err: errors.New("TEMPLATE NOT FOUND"), wantCode: "TPL001"},
		{name: "unknown error falls back", err: errors.New("something odd happened"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, msg.Code, tt.wantCode)
			}
			if msg.Message == "" || msg.Action == "" {
				t.Errorf("MapError(%v) missing message or action: %+v", tt.err, msg)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if msg := MapError(nil); msg.Code != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", msg)
	}
}
