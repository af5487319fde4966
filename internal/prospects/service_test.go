package prospects

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCaptureAssignsDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	id, err := svc.Capture(context.Background(), CaptureParams{
		AgentID:   "agent-1",
		Email:     "  Jane@Example.com ",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if id == "" {
		t.Fatalf("expected prospect id")
	}

	list, err := svc.List(context.Background(), "agent-1", 0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 prospect, got %d", len(list))
	}
	if list[0].Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %q", list[0].Email)
	}
	if list[0].Status != StatusNew {
		t.Fatalf("expected status NEW, got %q", list[0].Status)
	}
	if list[0].Source != SourceBalanceSheet {
		t.Fatalf("expected default source, got %q", list[0].Source)
	}
}

func TestCaptureDeduplicatesOnAgentAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-1", Email: "jane@example.com", FirstName: "Jane"})
	if err != nil {
		t.Fatalf("first Capture: %v", err)
	}
	second, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-1", Email: "JANE@example.com", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("second Capture: %v", err)
	}
	if first != second {
		t.Fatalf("expected same prospect id for duplicate email, got %q vs %q", first, second)
	}

	list, _ := svc.List(ctx, "agent-1", 0, 0)
	if len(list) != 1 {
		t.Fatalf("expected 1 prospect after dedupe, got %d", len(list))
	}
	if list[0].Phone != "555-0100" {
		t.Fatalf("expected phone backfilled, got %q", list[0].Phone)
	}
	if list[0].FirstName != "Jane" {
		t.Fatalf("expected original first name kept, got %q", list[0].FirstName)
	}

	// Same email under another agent is a separate prospect.
	other, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-2", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("other agent Capture: %v", err)
	}
	if other == first {
		t.Fatalf("expected distinct prospect per agent")
	}
}

func TestCaptureWithoutEmailUsesUniquePlaceholder(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	a, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-1", FirstName: "Anon"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	b, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-1", FirstName: "Anon"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if a == b {
		t.Fatalf("anonymous prospects must not collapse into one row")
	}

	list, _ := svc.List(ctx, "agent-1", 0, 0)
	for _, p := range list {
		if !strings.HasPrefix(p.Email, "no-email+") || !strings.HasSuffix(p.Email, "@internal.invalid") {
			t.Fatalf("expected placeholder email, got %q", p.Email)
		}
	}
}

func TestCaptureBusinessProspect(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	id, err := svc.Capture(ctx, CaptureParams{
		AgentID:      "agent-1",
		Email:        "owner@acme.test",
		FirstName:    "Pat",
		LastName:     "Owner",
		BusinessName: "Acme LLC",
		Business:     true,
	})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}

	list, err := svc.ListBusiness(ctx, "agent-1", 0, 0)
	if err != nil {
		t.Fatalf("ListBusiness: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("expected the captured business prospect, got %+v", list)
	}
	if list[0].ContactName != "Pat Owner" {
		t.Fatalf("expected joined contact name, got %q", list[0].ContactName)
	}
	if list[0].BusinessName != "Acme LLC" {
		t.Fatalf("expected business name, got %q", list[0].BusinessName)
	}

	personal, _ := svc.List(ctx, "agent-1", 0, 0)
	if len(personal) != 0 {
		t.Fatalf("business capture must not create a personal prospect")
	}
}

func TestMarkAnalysisSent(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Capture(ctx, CaptureParams{AgentID: "agent-1", Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if err := svc.MarkAnalysisSent(ctx, "agent-1", id); err != nil {
		t.Fatalf("MarkAnalysisSent: %v", err)
	}

	list, _ := svc.List(ctx, "agent-1", 0, 0)
	if list[0].Status != StatusAnalysisSent {
		t.Fatalf("expected ANALYSIS_SENT, got %q", list[0].Status)
	}

	if err := svc.MarkAnalysisSent(ctx, "agent-2", id); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for another agent's prospect, got %v", err)
	}
}

func TestListNewestFirstWithPaging(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		p, err := repo.Upsert(ctx, Prospect{
			AgentID: "agent-1",
			Email:   PlaceholderEmail(),
			Source:  SourceBalanceSheet,
		})
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
		// Spread creation times so ordering is deterministic.
		stored := repo.personal[personalKey("agent-1", p.Email)]
		stored.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		stored.FirstName = string(rune('A' + i))
		repo.personal[personalKey("agent-1", p.Email)] = stored
	}

	page, err := svc.List(ctx, "agent-1", 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page))
	}
	if page[0].FirstName != "D" || page[1].FirstName != "C" {
		t.Fatalf("expected newest-first page [D C], got [%s %s]", page[0].FirstName, page[1].FirstName)
	}
}
