package api

import (
	"errors"
	"testing"
)

func TestUploadValidateContentType(t *testing.T) {
	u := &Upload{Filename: "logo.gif", ContentType: "image/gif", Data: []byte("x")}
	err := u.validate(logoTypes, 1_000_000)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type: got %T (%v), want *ValidationError", err, err)
	}
}

func TestUploadValidateSizeLimit(t *testing.T) {
	u := &Upload{Filename: "logo.png", ContentType: "image/png", Data: make([]byte, 2_000_000)}
	if err := u.validate(logoTypes, 1_000_000); err == nil {
		t.Error("oversized upload: got nil error, want ValidationError")
	}

	u.Data = make([]byte, 500_000)
	if err := u.validate(logoTypes, 1_000_000); err != nil {
		t.Errorf("valid upload: got %v, want nil", err)
	}
}

func TestItemDraftValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft ItemDraft
		ok    bool
	}{
		{name: "complete", draft: ItemDraft{Name: "Latte", Price: 4.5, CategoryID: 1}, ok: true},
		{name: "missing name", draft: ItemDraft{Price: 4.5, CategoryID: 1}, ok: false},
		{name: "missing price", draft: ItemDraft{Name: "Latte", CategoryID: 1}, ok: false},
		{name: "missing category", draft: ItemDraft{Name: "Latte", Price: 4.5}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.validate(0)
			if tt.ok && err != nil {
				t.Errorf("validate: got %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("validate: got nil, want ValidationError")
			}
		})
	}
}
