package store

import (
	"errors"
	"io/fs"
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "sentences.csv", want: "sentences.csv"},
		{name: "nested", input: "embeddings/custom_catalog.yaml", want: "embeddings/custom_catalog.yaml"},
		{name: "dot segments", input: "embeddings/./a/../b.yaml", want: "embeddings/b.yaml"},
		{name: "empty", input: "", wantErr: true},
		{name: "absolute", input: "/etc/passwd", wantErr: true},
		{name: "escape", input: "../outside", wantErr: true},
		{name: "self", input: ".", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := NewError("write", "/tmp/x", fs.ErrPermission)

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatal("expected *Error")
	}
	if storeErr.Op != "write" || storeErr.Path != "/tmp/x" {
		t.Fatalf("unexpected fields: %+v", storeErr)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatal("expected errors.Is to reach the wrapped error")
	}
	if err.Error() != "store write /tmp/x: permission denied" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if NewError("read", "x", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
