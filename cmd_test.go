package main

import (
	"context"
	"strings"
	"testing"
)

func TestServeRejectsUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Mode = "production"
	cfg.Server.Addr = "127.0.0.1:0"

	err := serve(context.Background(), cfg)
	if err == nil {
		t.Fatal("Expected an error for an unknown server.mode")
	}
	if !strings.Contains(err.Error(), `invalid server.mode "production"`) {
		t.Errorf("unexpected error: %v", err)
	}
}
