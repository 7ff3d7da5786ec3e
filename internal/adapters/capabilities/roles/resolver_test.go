package roles

import (
	"context"
	"testing"

	"dairysync/internal/ports/capabilities"
)

func TestResolver_VetHasDashboard_FarmerDoesNot(t *testing.T) {
	r := NewResolver()
	ctx := context.Background()

	ok, err := r.HasFeature(ctx, capabilities.CapabilityCheck{Role: "vet", Capability: capabilities.VetDashboard})
	if err != nil || !ok {
		t.Fatalf("expected vet to have dashboard, got ok=%v err=%v", ok, err)
	}

	ok, err = r.HasFeature(ctx, capabilities.CapabilityCheck{Role: "farmer", Capability: capabilities.VetDashboard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("farmer must not have dashboard:vet")
	}
}

func TestResolver_UnknownRole(t *testing.T) {
	r := NewResolver()
	if _, err := r.Resolve(context.Background(), "admin"); err != ErrUnknownRole {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestResolver_ResolveReturnsCopy(t *testing.T) {
	r := NewResolver()
	caps, _ := r.Resolve(context.Background(), "farmer")
	caps[0] = "tampered"

	again, _ := r.Resolve(context.Background(), "farmer")
	if again[0] != capabilities.AnimalsManage {
		t.Fatalf("resolver table was mutated: %v", again)
	}
}
