// internal/models/team.go
package models

import "time"

const (
	MemberStatusOnline  = "online"
	MemberStatusOffline = "offline"
	MemberStatusAway    = "away"
)

type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateTeamMemberInput struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

type RFPAssignment struct {
	ID         string    `json:"id"`
	RFPID      string    `json:"rfpId"`
	MemberID   string    `json:"memberId"`
	AssignedAt time.Time `json:"assignedAt"`
}

type CreateAssignmentInput struct {
	RFPID    string `json:"rfpId"`
	MemberID string `json:"memberId"`
}
