package unit

import (
	"context"
	"errors"
	"testing"

	memberregistry "comunidad/contexts/governance/member-registry"
	domainerrors "comunidad/contexts/governance/member-registry/domain/errors"
	"comunidad/contexts/governance/member-registry/ports"
	httptransport "comunidad/contexts/governance/member-registry/transport/http"
)

func TestMemberRegistryRoleConflictAndHandover(t *testing.T) {
	module := memberregistry.NewInMemoryModule(nil, nil)
	module.Store.SetProperty(ports.PropertyProjection{PropertyID: "prop-101", Active: true, Resident: true})
	module.Store.SetProperty(ports.PropertyProjection{PropertyID: "prop-102", Active: true, Resident: false})

	first, err := module.Handler.CreateMemberHandler(context.Background(), httptransport.CreateMemberRequest{
		FullName:   "Ana Morales",
		Role:       "president",
		PropertyID: "prop-101",
		StartDate:  "2026-01-01",
	})
	if err != nil {
		t.Fatalf("create president failed: %v", err)
	}
	if !first.Active {
		t.Fatalf("expected new member active")
	}
	if !first.Permissions.CallAssembly || !first.Permissions.SignDocuments {
		t.Fatalf("expected president default permissions, got %+v", first.Permissions)
	}

	_, err = module.Handler.CreateMemberHandler(context.Background(), httptransport.CreateMemberRequest{
		FullName:   "Luis Vega",
		Role:       "president",
		PropertyID: "prop-102",
		StartDate:  "2026-01-01",
	})
	if !errors.Is(err, domainerrors.ErrRoleConflict) {
		t.Fatalf("expected role conflict, got %v", err)
	}

	if _, err := module.Handler.DeactivateHandler(context.Background(), first.MemberID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	second, err := module.Handler.CreateMemberHandler(context.Background(), httptransport.CreateMemberRequest{
		FullName:   "Luis Vega",
		Role:       "president",
		PropertyID: "prop-102",
		StartDate:  "2026-02-01",
	})
	if err != nil {
		t.Fatalf("create president after handover failed: %v", err)
	}

	active, err := module.Handler.ActiveMembersHandler(context.Background())
	if err != nil {
		t.Fatalf("active members failed: %v", err)
	}
	if len(active.Items) != 1 || active.Items[0].MemberID != second.MemberID {
		t.Fatalf("expected only the new president active, got %+v", active.Items)
	}
}

func TestMemberRegistryRejectsInactiveProperty(t *testing.T) {
	module := memberregistry.NewInMemoryModule(nil, nil)
	module.Store.SetProperty(ports.PropertyProjection{PropertyID: "prop-7", Active: false})

	_, err := module.Handler.CreateMemberHandler(context.Background(), httptransport.CreateMemberRequest{
		FullName:   "Marta Ruiz",
		Role:       "vocal",
		PropertyID: "prop-7",
		StartDate:  "2026-03-01",
	})
	if !errors.Is(err, domainerrors.ErrPropertyInactive) {
		t.Fatalf("expected inactive property rejection, got %v", err)
	}
}
