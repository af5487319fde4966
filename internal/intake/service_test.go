package intake

import (
	"context"
	"reflect"
	"testing"

	"fna-backend/internal/fna"
	"fna-backend/internal/prospects"
	"fna-backend/internal/referrals"
)

func floatPtr(v float64) *float64 { return &v }

func newTestService() (*Service, *prospects.Service, *referrals.MemoryRepo) {
	prospectSvc := prospects.NewService(prospects.NewMemoryRepo())
	referralRepo := referrals.NewMemoryRepo()
	referralSvc := referrals.NewService(referralRepo, prospectSvc, nil, nil)
	svc := NewService(NewMemoryRepo(), prospectSvc, referralSvc)
	return svc, prospectSvc, referralRepo
}

func personalRequest() SubmitRequest {
	return SubmitRequest{
		Profile: fna.Profile{
			FirstName:            "Jane",
			LastName:             "Doe",
			Age:                  35,
			RetireAge:            65,
			FormType:             fna.FormTypePersonal,
			TotalIncome:          100000,
			TotalMonthlyExpenses: 3000,
			TotalAssets:          50000,
			TotalLiabilities:     20000,
			EmergencyFund:        9000,
			CheckingSavings:      3000,
			DebtPayments:         500,
			Dependents:           1,
		},
		Email: "jane@example.com",
		Phone: "555-0100",
	}
}

func TestSubmitPersonalStoresAnalysisAndProspect(t *testing.T) {
	svc, prospectSvc, _ := newTestService()
	ctx := context.Background()

	submission, err := svc.Submit(ctx, SubmitParams{
		AgentID: "agent-1",
		Request: personalRequest(),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if submission.FormType != fna.FormTypePersonal {
		t.Fatalf("expected personal form type, got %q", submission.FormType)
	}
	if submission.Result.Personal == nil || submission.Result.IncomeProtection == nil {
		t.Fatalf("expected personal results populated, got %+v", submission.Result)
	}
	if submission.Result.Business != nil || submission.Result.BusinessProtection != nil {
		t.Fatalf("business results must be empty for a personal form")
	}
	if submission.Result.Personal.HealthScore != 56 {
		t.Fatalf("expected health score 56, got %d", submission.Result.Personal.HealthScore)
	}

	list, err := prospectSvc.List(ctx, "agent-1", 0, 0)
	if err != nil {
		t.Fatalf("prospects List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 prospect, got %d", len(list))
	}
	if list[0].ID != submission.ProspectID {
		t.Fatalf("submission must point at the captured prospect")
	}
	if list[0].Status != prospects.StatusAnalysisSent {
		t.Fatalf("expected ANALYSIS_SENT after submit, got %q", list[0].Status)
	}
}

func TestSubmitBusinessRunsBusinessCalculators(t *testing.T) {
	svc, prospectSvc, _ := newTestService()
	ctx := context.Background()

	req := SubmitRequest{
		Profile: fna.Profile{
			FirstName:           "Pat",
			LastName:            "Owner",
			FormType:            fna.FormTypeBusiness,
			BusinessName:        "Acme LLC",
			Industry:            "technology",
			AnnualRevenue:       1000000,
			AnnualExpenses:      800000,
			NetProfit:           floatPtr(150000),
			BusinessAssets:      400000,
			BusinessLiabilities: 100000,
		},
		Email: "owner@acme.test",
	}

	submission, err := svc.Submit(ctx, SubmitParams{AgentID: "agent-1", Request: req})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submission.Result.Business == nil || submission.Result.BusinessProtection == nil {
		t.Fatalf("expected business results populated")
	}
	if submission.Result.Personal != nil {
		t.Fatalf("personal results must be empty for a business form")
	}
	if got := submission.Result.Business.ValuationLow; got != 300000 {
		t.Fatalf("expected valuation low 300000, got %v", got)
	}

	business, err := prospectSvc.ListBusiness(ctx, "agent-1", 0, 0)
	if err != nil {
		t.Fatalf("ListBusiness: %v", err)
	}
	if len(business) != 1 || business[0].BusinessName != "Acme LLC" {
		t.Fatalf("expected a business prospect, got %+v", business)
	}
}

func TestSubmitUnknownFormTypeDefaultsToPersonal(t *testing.T) {
	svc, _, _ := newTestService()

	req := personalRequest()
	req.Profile.FormType = "mystery"
	submission, err := svc.Submit(context.Background(), SubmitParams{AgentID: "agent-1", Request: req})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submission.FormType != fna.FormTypePersonal {
		t.Fatalf("expected fallback to personal, got %q", submission.FormType)
	}
}

func TestSubmitFansOutReferrals(t *testing.T) {
	svc, prospectSvc, referralRepo := newTestService()
	ctx := context.Background()

	req := personalRequest()
	req.Referrals = []referrals.Entry{
		{Name: "Alice Johnson", Contact: "alice@example.com"},
		{Name: "", Contact: "ignored"},
	}

	submission, err := svc.Submit(ctx, SubmitParams{AgentID: "agent-1", Request: req})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	refs, err := referralRepo.ListByAgent(ctx, "agent-1", 10)
	if err != nil {
		t.Fatalf("ListByAgent: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected 1 referral, got %d", len(refs))
	}
	if refs[0].SubmissionID != submission.ID {
		t.Fatalf("referral must record its submission")
	}

	list, _ := prospectSvc.List(ctx, "agent-1", 0, 0)
	if len(list) != 2 {
		t.Fatalf("expected submitter plus referral prospect, got %d", len(list))
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	submission, err := svc.Submit(ctx, SubmitParams{AgentID: "agent-1", Request: personalRequest()})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got, err := svc.Get(ctx, "agent-1", submission.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != submission.ID {
		t.Fatalf("expected the stored submission back")
	}

	if _, err := svc.Get(ctx, "agent-2", submission.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for another agent, got %v", err)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	profile := personalRequest().Profile
	a := Analyze(profile)
	b := Analyze(profile)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated analysis must be identical")
	}
	if a.Personal.HealthScore != b.Personal.HealthScore ||
		a.IncomeProtection.ProtectionScore != b.IncomeProtection.ProtectionScore {
		t.Fatalf("repeated analysis must match")
	}
}
