package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

func newProposalRequest() *dto.CreateProposalRequest {
	return &dto.CreateProposalRequest{
		Title:    "Sistema de Gerenciamento de Propostas",
		Author:   "João Silva",
		Advisor:  "Prof. Ana Souza",
		Abstract: "Um estudo sobre fluxos de aprovação.",
		Keywords: "go, workflow, tcc",
	}
}

func TestProposalServiceCreateAlwaysPending(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	student := seedUser(t, users, "João Silva", "joao@uni.edu", model.RoleStudent)

	resp, err := svc.Create(context.Background(), newProposalRequest(), asCaller(student))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("new proposal must be PENDING, got %q", resp.Status)
	}
	if resp.StudentID != student.UserID {
		t.Errorf("ownership must be the caller, got %q", resp.StudentID)
	}
}

func TestProposalServiceCreateNonStudentForbidden(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())

	for _, role := range []string{model.RoleOrientador, model.RoleCoordenador, model.RoleAdmin} {
		u := seedUser(t, users, "Revisor "+role, role+"@uni.edu", role)
		_, err := svc.Create(context.Background(), newProposalRequest(), asCaller(u))
		if !errors.Is(err, pkgerrors.ErrForbidden) {
			t.Errorf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestProposalServiceUpdateNonOwnerStudentForbidden(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	s1 := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	s2 := seedUser(t, users, "Maria", "maria@uni.edu", model.RoleStudent)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(s1))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateProposalRequest{
		Title: strPtr("Título alheio"),
	}, asCaller(s2))
	if !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProposalServiceUpdateStudentStatusStripped(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(student))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateProposalRequest{
		Title:    strPtr("Título revisado"),
		Status:   strPtr(model.StatusApproved),
		Feedback: strPtr("autoaprovado"),
	}, asCaller(student))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Title != "Título revisado" {
		t.Errorf("title not applied: %q", resp.Title)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("status must be silently stripped for students, got %q", resp.Status)
	}
	if resp.Feedback != nil {
		t.Errorf("feedback must be silently stripped for students, got %q", *resp.Feedback)
	}
}

func TestProposalServiceUpdateReviewerDecides(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	orientador := seedUser(t, users, "Prof. Ana Souza", "ana@uni.edu", model.RoleOrientador)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(student))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateProposalRequest{
		Status:   strPtr(model.StatusApproved),
		Feedback: strPtr("Proposta bem fundamentada."),
	}, asCaller(orientador))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != model.StatusApproved {
		t.Errorf("reviewer decision not applied: %q", resp.Status)
	}
	if resp.Feedback == nil || *resp.Feedback != "Proposta bem fundamentada." {
		t.Errorf("feedback not applied")
	}
}

func TestProposalServiceUpdateRetriesOnceThenConflict(t *testing.T) {
	repo, users, proposals := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(student))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	attempts := 0
	proposals.updateHook = func(stored *model.Proposal) {
		attempts++
		stored.Version++
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateProposalRequest{
		Title: strPtr("Título revisado"),
	}, asCaller(student))
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected exactly one retry (2 attempts), got %d", attempts)
	}
}

// A concurrent reviewer finalizes the proposal between the read and the
// write. With strict transitions on, the retry must re-evaluate the
// policy against the fresh record and refuse to override the decision.
func TestProposalServiceUpdateRetryReevaluatesPolicy(t *testing.T) {
	repo, users, proposals := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(true), zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	coord := seedUser(t, users, "Coordenador", "coord@uni.edu", model.RoleCoordenador)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(student))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	raced := false
	proposals.updateHook = func(stored *model.Proposal) {
		if !raced {
			raced = true
			stored.Status = model.StatusApproved
			stored.Version++
		}
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateProposalRequest{
		Status: strPtr(model.StatusRejected),
	}, asCaller(coord))
	if !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict on terminal status, got %v", err)
	}

	stored, err := proposals.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reloading proposal: %v", err)
	}
	if stored.Status != model.StatusApproved {
		t.Errorf("concurrent decision was overwritten: %q", stored.Status)
	}
}

func TestProposalServiceListScopes(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	s1 := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	s2 := seedUser(t, users, "Maria", "maria@uni.edu", model.RoleStudent)
	orientador := seedUser(t, users, "Prof. Ana Souza", "ana@uni.edu", model.RoleOrientador)
	admin := seedUser(t, users, "Admin", "admin@uni.edu", model.RoleAdmin)

	if _, err := svc.Create(context.Background(), newProposalRequest(), asCaller(s1)); err != nil {
		t.Fatalf("creating proposal: %v", err)
	}
	req2 := newProposalRequest()
	req2.Advisor = "Prof. Carlos Lima"
	if _, err := svc.Create(context.Background(), req2, asCaller(s2)); err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	listReq := &dto.ProposalListRequest{}

	_, total, err := svc.List(context.Background(), listReq, asCaller(s1))
	if err != nil || total != 1 {
		t.Errorf("student scope: total=%d err=%v", total, err)
	}

	result, total, err := svc.List(context.Background(), listReq, asCaller(orientador))
	if err != nil || total != 1 {
		t.Fatalf("orientador scope: total=%d err=%v", total, err)
	}
	if result[0].Advisor != "Prof. Ana Souza" {
		t.Errorf("orientador sees wrong proposal: %q", result[0].Advisor)
	}

	_, total, err = svc.List(context.Background(), listReq, asCaller(admin))
	if err != nil || total != 2 {
		t.Errorf("admin scope: total=%d err=%v", total, err)
	}

	_, _, err = svc.List(context.Background(), listReq, policy.Caller{})
	if !errors.Is(err, pkgerrors.ErrUnauthorized) {
		t.Errorf("anonymous listing: expected ErrUnauthorized, got %v", err)
	}
}

func TestProposalServiceDeleteMatrix(t *testing.T) {
	repo, users, _ := newTestRepos()
	svc := NewProposalService(repo, policy.NewEngine(false), zap.NewNop())
	s1 := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	s2 := seedUser(t, users, "Maria", "maria@uni.edu", model.RoleStudent)
	orientador := seedUser(t, users, "Prof. Ana Souza", "ana@uni.edu", model.RoleOrientador)
	admin := seedUser(t, users, "Admin", "admin@uni.edu", model.RoleAdmin)

	created, err := svc.Create(context.Background(), newProposalRequest(), asCaller(s1))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID, asCaller(s2)); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Errorf("other student: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, asCaller(orientador)); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Errorf("orientador: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, asCaller(s1)); err != nil {
		t.Errorf("owner student: expected success, got %v", err)
	}

	created, err = svc.Create(context.Background(), newProposalRequest(), asCaller(s1))
	if err != nil {
		t.Fatalf("creating proposal: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, asCaller(admin)); err != nil {
		t.Errorf("admin: expected success, got %v", err)
	}
}

// Full workflow: submission, unauthorized edit, review decision and the
// account-cleanup ordering constraint.
func TestProposalWorkflowLifecycle(t *testing.T) {
	repo, users, _ := newTestRepos()
	engine := policy.NewEngine(false)
	logger := zap.NewNop()
	proposalSvc := NewProposalService(repo, engine, logger)
	userSvc := NewUserService(repo, engine, logger)

	s1 := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)
	s2 := seedUser(t, users, "Maria", "maria@uni.edu", model.RoleStudent)
	orientador := seedUser(t, users, "Prof. Ana Souza", "ana@uni.edu", model.RoleOrientador)
	admin := seedUser(t, users, "Admin", "admin@uni.edu", model.RoleAdmin)

	ctx := context.Background()

	created, err := proposalSvc.Create(ctx, newProposalRequest(), asCaller(s1))
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	if _, err := proposalSvc.Update(ctx, created.ID, &dto.UpdateProposalRequest{
		Title: strPtr("Invasão"),
	}, asCaller(s2)); !errors.Is(err, pkgerrors.ErrForbidden) {
		t.Fatalf("foreign edit: expected ErrForbidden, got %v", err)
	}

	approved, err := proposalSvc.Update(ctx, created.ID, &dto.UpdateProposalRequest{
		Status:   strPtr(model.StatusApproved),
		Feedback: strPtr("Aprovada."),
	}, asCaller(orientador))
	if err != nil {
		t.Fatalf("review decision failed: %v", err)
	}
	if approved.Status != model.StatusApproved {
		t.Fatalf("decision not applied: %q", approved.Status)
	}

	if err := userSvc.Delete(ctx, s1.UserID, asCaller(admin)); !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("account removal with live proposal: expected ErrConflict, got %v", err)
	}

	if err := proposalSvc.Delete(ctx, created.ID, asCaller(admin)); err != nil {
		t.Fatalf("proposal removal failed: %v", err)
	}
	if err := userSvc.Delete(ctx, s1.UserID, asCaller(admin)); err != nil {
		t.Fatalf("account removal after cleanup failed: %v", err)
	}
}
