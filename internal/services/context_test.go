package services_test

import (
	"context"
	"testing"
	"time"

	"voirank/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithCommand(ctx, "pairs")
	ctx = services.WithCategory(ctx, "game")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if cmd, ok := services.CommandFromContext(ctx); !ok || cmd != "pairs" {
		t.Fatalf("unexpected command: %v %v", cmd, ok)
	}
	if cat, ok := services.CategoryFromContext(ctx); !ok || cat != "game" {
		t.Fatalf("unexpected category: %v %v", cat, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := services.WithCategory(context.Background(), "")
	if _, ok := services.CategoryFromContext(ctx); ok {
		t.Fatal("expected no category value")
	}
}

func TestSleepWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := services.SleepWithContext(ctx, time.Hour); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestPacerFirstCallDoesNotWait(t *testing.T) {
	p := services.NewPacer(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}
	if err := p.Wait(ctx); err == nil {
		t.Fatal("expected second Wait to hit the context deadline")
	}
}
