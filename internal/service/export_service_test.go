package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
)

func TestExportProposalsEmpty(t *testing.T) {
	repo, _, _ := newTestRepos()
	svc := NewExportService(repo, zap.NewNop())

	_, _, err := svc.ExportProposals(context.Background(), "")
	if !errors.Is(err, ErrExportNoProposals) {
		t.Fatalf("expected ErrExportNoProposals, got %v", err)
	}
}

func TestExportProposalsWorkbook(t *testing.T) {
	repo, users, proposals := newTestRepos()
	svc := NewExportService(repo, zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)

	feedback := "Aprovada."
	p := &model.Proposal{
		Title: "Tema A", Author: "João", Advisor: "Prof. Ana",
		Abstract: "resumo", Keywords: "go", Status: model.StatusApproved,
		Feedback: &feedback, StudentID: student.UserID,
	}
	if err := proposals.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding proposal: %v", err)
	}

	buf, filename, err := svc.ExportProposals(context.Background(), model.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(filename, "propostas_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("unexpected filename: %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Propostas")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(rows))
	}
	if rows[1][0] != "Tema A" || rows[1][4] != model.StatusApproved {
		t.Errorf("row content wrong: %v", rows[1])
	}
}

func TestExportProposalsStatusFilter(t *testing.T) {
	repo, users, proposals := newTestRepos()
	svc := NewExportService(repo, zap.NewNop())
	student := seedUser(t, users, "João", "joao@uni.edu", model.RoleStudent)

	for _, status := range []string{model.StatusPending, model.StatusApproved} {
		p := &model.Proposal{
			Title: "Tema " + status, Author: "João", Advisor: "Prof. Ana",
			Abstract: "resumo", Keywords: "go", Status: status, StudentID: student.UserID,
		}
		if err := proposals.Create(context.Background(), p); err != nil {
			t.Fatalf("seeding proposal: %v", err)
		}
	}

	buf, _, err := svc.ExportProposals(context.Background(), model.StatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Propostas")
	if err != nil {
		t.Fatalf("reading sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected only PENDING proposals, got %d data rows", len(rows)-1)
	}
}
