// Package policy is the central authority for proposal and user account
// mutations: which records a caller may see, whether a requested mutation
// is permitted, and whether a status transition is legal. Decisions are
// pure functions of the caller, the stored record and the patch; all I/O
// stays in the repositories.
package policy

import (
	"strings"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

// Caller is the identity resolved from the access token.
type Caller struct {
	ID   string
	Name string
	Role string
}

// IsReviewer reports whether the caller may mutate status/feedback.
func (c Caller) IsReviewer() bool {
	switch c.Role {
	case model.RoleOrientador, model.RoleCoordenador, model.RoleAdmin:
		return true
	}
	return false
}

// Engine evaluates authorization decisions. Stateless apart from the
// transition-strictness toggle.
type Engine struct {
	strictTransitions bool
}

// NewEngine creates a policy engine. strictTransitions makes
// APPROVED/REJECTED terminal; the default (false) preserves the original
// permissive behavior where reviewers may re-decide finalized proposals.
func NewEngine(strictTransitions bool) *Engine {
	return &Engine{strictTransitions: strictTransitions}
}

// ── visibility ──

// ListScope restricts a proposal listing. Zero value means unrestricted.
type ListScope struct {
	// StudentID, when set, limits results to proposals owned by that user.
	StudentID string
	// AdvisorName, when set, limits results to proposals whose advisor
	// field contains the name (case-insensitive substring; legacy
	// semantics carried over from the free-text advisor column).
	AdvisorName string
}

// ProposalListScope returns the visibility predicate for a caller.
func (e *Engine) ProposalListScope(caller Caller) (ListScope, error) {
	if caller.ID == "" {
		return ListScope{}, pkgerrors.ErrUnauthorized
	}
	switch caller.Role {
	case model.RoleStudent:
		return ListScope{StudentID: caller.ID}, nil
	case model.RoleOrientador:
		return ListScope{AdvisorName: caller.Name}, nil
	case model.RoleCoordenador, model.RoleAdmin:
		return ListScope{}, nil
	}
	return ListScope{}, pkgerrors.ErrForbidden
}

// MatchesAdvisor reports whether an advisor free-text field matches a
// caller display name under the legacy substring rule.
func MatchesAdvisor(advisor, name string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(advisor), strings.ToLower(name))
}

// ── proposal mutations ──

// ProposalPatch is the mutable field set of a proposal update. Nil means
// the field is absent from the request.
type ProposalPatch struct {
	Title     *string
	Author    *string
	Advisor   *string
	Abstract  *string
	Keywords  *string
	Status    *string
	Feedback  *string
	StudentID *string // always rejected; ownership is immutable
}

// CanCreateProposal permits creation for STUDENT callers only. The caller
// of this decision must initialize the record with status PENDING and the
// student's own ID, regardless of the request body.
func (e *Engine) CanCreateProposal(caller Caller) error {
	if caller.ID == "" {
		return pkgerrors.ErrUnauthorized
	}
	if caller.Role != model.RoleStudent {
		return pkgerrors.ErrForbidden
	}
	return nil
}

// AuthorizeProposalUpdate decides a proposal mutation and sanitizes the
// patch in place. STUDENT callers must own the proposal and have
// status/feedback silently stripped; reviewers get the full patch subject
// to the transition rule. student_id never changes.
func (e *Engine) AuthorizeProposalUpdate(caller Caller, existing *model.Proposal, patch *ProposalPatch) error {
	if existing == nil {
		return pkgerrors.ErrNotFound
	}
	if caller.ID == "" {
		return pkgerrors.ErrUnauthorized
	}
	if patch.StudentID != nil {
		return pkgerrors.ErrForbidden
	}

	switch caller.Role {
	case model.RoleStudent:
		if existing.StudentID != caller.ID {
			return pkgerrors.ErrForbidden
		}
		// silent strip, not an error: students cannot self-review
		patch.Status = nil
		patch.Feedback = nil
	case model.RoleOrientador, model.RoleCoordenador, model.RoleAdmin:
		// full patch allowed
	default:
		return pkgerrors.ErrForbidden
	}

	if patch.Status != nil {
		if err := e.checkTransition(existing.Status, *patch.Status); err != nil {
			return err
		}
	}

	return nil
}

// checkTransition validates a status change. In default mode every
// transition between the four statuses is legal; strict mode makes
// APPROVED/REJECTED terminal.
func (e *Engine) checkTransition(from, to string) error {
	if !model.ValidStatus(to) {
		return pkgerrors.ErrInvalid
	}
	if !e.strictTransitions {
		return nil
	}
	if (from == model.StatusApproved || from == model.StatusRejected) && from != to {
		return pkgerrors.ErrConflict
	}
	return nil
}

// CanDeleteProposal permits deletion for ADMIN callers and owning
// students.
func (e *Engine) CanDeleteProposal(caller Caller, existing *model.Proposal) error {
	if existing == nil {
		return pkgerrors.ErrNotFound
	}
	if caller.ID == "" {
		return pkgerrors.ErrUnauthorized
	}
	if caller.Role == model.RoleAdmin {
		return nil
	}
	if caller.Role == model.RoleStudent && existing.StudentID == caller.ID {
		return nil
	}
	return pkgerrors.ErrForbidden
}

// ── user account mutations ──

// UserPatch is the mutable field set of a user update. Nil means absent.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string // hashed by the service before storage, never stored raw
	Role     *string
}

// AuthorizeUserUpdate decides a user mutation and sanitizes the patch in
// place. Non-administrators may update only themselves and have the role
// field silently stripped.
func (e *Engine) AuthorizeUserUpdate(caller Caller, targetID string, patch *UserPatch) error {
	if caller.ID == "" {
		return pkgerrors.ErrUnauthorized
	}
	if caller.Role != model.RoleAdmin {
		if targetID != caller.ID {
			return pkgerrors.ErrForbidden
		}
		patch.Role = nil
	}
	if patch.Role != nil {
		switch *patch.Role {
		case model.RoleStudent, model.RoleOrientador, model.RoleCoordenador, model.RoleAdmin:
		default:
			return pkgerrors.ErrInvalid
		}
	}
	return nil
}

// CanDeleteUser permits user deletion for administrators, never for the
// account's own caller, and only when no proposal still references the
// user as its student.
func (e *Engine) CanDeleteUser(caller Caller, target *model.User, proposalCount int64) error {
	if target == nil {
		return pkgerrors.ErrNotFound
	}
	if caller.ID == "" {
		return pkgerrors.ErrUnauthorized
	}
	if target.UserID == caller.ID {
		// self-protection rule, independent of role
		return pkgerrors.ErrForbidden
	}
	if caller.Role != model.RoleAdmin {
		return pkgerrors.ErrForbidden
	}
	if proposalCount > 0 {
		return pkgerrors.ErrConflict
	}
	return nil
}
