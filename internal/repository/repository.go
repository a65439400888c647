package repository

import "gorm.io/gorm"

// Repository aggregates all repositories.
type Repository struct {
	User     UserRepository
	Proposal ProposalRepository
}

// NewRepository creates the repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:     NewUserRepo(db),
		Proposal: NewProposalRepo(db),
	}
}
