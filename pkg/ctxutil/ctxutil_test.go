package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithActor_And_ActorFromCtx(t *testing.T) {
	t.Parallel()

	actor := Actor{ID: uuid.New(), Role: "admin", Name: "Jane Admin"}
	ctx := WithActor(context.Background(), actor)

	got, ok := ActorFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid actor")
	}
	if got != actor {
		t.Fatalf("expected %+v, got %+v", actor, got)
	}
}

func TestActorFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ActorFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != (Actor{}) {
		t.Fatalf("expected zero actor, got %+v", got)
	}
}

func TestActorFromCtx_NilID(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), Actor{Role: "admin", Name: "no id"})

	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for nil actor ID")
	}
}

func TestActorFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("actor"), "not-an-actor")

	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestRequestIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("request_id"), 12345)

	got := RequestIDFromCtx(ctx)
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
