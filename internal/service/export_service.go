package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
)

var (
	ErrExportNoProposals  = errors.New("não há propostas para exportar")
	ErrExportGenerateFail = errors.New("falha ao gerar arquivo Excel")
)

// exportMaxRows caps a single report; the review pipeline of one
// institution stays far below this.
const exportMaxRows = 5000

// ExportService builds the proposal review report.
//
// The report is returned as a bytes.Buffer; the handler sets the HTTP
// headers and streams it. One sheet, one row per proposal, ordered by
// creation date (newest first, same as the listings).
type ExportService interface {
	ExportProposals(ctx context.Context, status string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportProposals(ctx context.Context, status string) (*bytes.Buffer, string, error) {
	filters := &repository.ProposalListFilters{Status: status}

	proposals, _, err := s.repo.Proposal.List(ctx, filters, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("listing proposals for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(proposals) == 0 {
		return nil, "", ErrExportNoProposals
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Propostas"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Título", "Autor", "Orientador", "Palavras-chave", "Status", "Parecer", "Aluno", "Email do Aluno", "Criada em"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, p := range proposals {
		feedback := ""
		if p.Feedback != nil {
			feedback = *p.Feedback
		}
		studentName, studentEmail := "", ""
		if p.Student != nil {
			studentName = p.Student.Name
			studentEmail = p.Student.Email
		}

		values := []interface{}{
			p.Title,
			p.Author,
			p.Advisor,
			p.Keywords,
			p.Status,
			feedback,
			studentName,
			studentEmail,
			p.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("writing Excel buffer failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("propostas_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
