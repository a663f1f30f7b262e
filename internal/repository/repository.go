package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Activity    ActivityRepository
	Submission  SubmissionRepository
	Vote        VoteRepository
	Participant ParticipantRepository
	Group       GroupRepository
	Initiative  InitiativeRepository
	Response    ResponseRepository
	Audit       AuditRepository
}

// NewRepository wires the gorm implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Session:     NewSessionRepo(db),
		Activity:    NewActivityRepo(db),
		Submission:  NewSubmissionRepo(db),
		Vote:        NewVoteRepo(db),
		Participant: NewParticipantRepo(db),
		Group:       NewGroupRepo(db),
		Initiative:  NewInitiativeRepo(db),
		Response:    NewResponseRepo(db),
		Audit:       NewAuditRepo(db),
	}
}
