package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// InvitationService handles group invitations between students
type InvitationService struct {
	invitations InvitationStore
	groups      GroupStore
	students    StudentStore
	notifier    Notifier
	logger      zerolog.Logger
}

// NewInvitationService creates a new InvitationService
func NewInvitationService(invitations InvitationStore, groups GroupStore, students StudentStore, notifier Notifier, logger zerolog.Logger) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		groups:      groups,
		students:    students,
		notifier:    notifier,
		logger:      logger.With().Str("service", "invitation").Logger(),
	}
}

// Invite lets a group leader invite another student by email
func (s *InvitationService) Invite(ctx context.Context, leaderID int64, email string) (*models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.IsEmail(email) {
		return nil, apperrors.NewValidationError("Invalid email")
	}

	membership, err := s.groups.GetMembership(ctx, leaderID)
	if err != nil && !errors.Is(err, apperrors.ErrNotInGroup) {
		return nil, err
	}
	if membership == nil || !membership.IsLeader {
		return nil, apperrors.NewForbiddenError("Only group leaders can invite members.")
	}

	invitee, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "Student not found with this email.")
		}
		return nil, err
	}

	if _, err := s.groups.GetMembership(ctx, invitee.ID); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyInGroup, "Student is already in a group.")
	} else if !errors.Is(err, apperrors.ErrNotInGroup) {
		return nil, err
	}

	inv := &models.Invitation{
		GroupID:   membership.GroupID,
		Email:     invitee.Email,
		InvitedBy: leaderID,
		Status:    models.InvitationPending,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateInvite) {
			return nil, apperrors.NewCustomError(apperrors.ErrDuplicateInvite, "Failed to send invitation. Check if already invited.")
		}
		return nil, err
	}
	s.logger.Info().Int64("groupID", inv.GroupID).Int64("userID", leaderID).Str("email", inv.Email).Msg("Invitation sent")

	groupName := "a project group"
	if group, err := s.groups.GetByID(ctx, inv.GroupID); err == nil {
		groupName = group.Name
		inv.GroupName = group.Name
		inv.ProjectTitle = group.ProjectTitle
	}
	s.notifier.Notify(ctx, invitee.ID, models.RoleStudent, "Group Invitation",
		fmt.Sprintf("You have been invited to join \"%s\".", groupName),
		"/dashboard/student/my-group")

	return inv, nil
}

// ListPending returns the pending invitations addressed to the student
func (s *InvitationService) ListPending(ctx context.Context, studentID int64) ([]*models.Invitation, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.invitations.ListPendingByEmail(ctx, student.Email)
}

// Respond accepts or rejects an invitation addressed to the student and notifies the inviter
func (s *InvitationService) Respond(ctx context.Context, studentID, invitationID int64, action string) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	notForYou := apperrors.NewCustomError(apperrors.ErrInvitationNotFound, "Invitation not found or not for you.")
	inv, err := s.invitations.GetByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvitationNotFound) {
			return notForYou
		}
		return err
	}
	if !strings.EqualFold(inv.Email, student.Email) {
		return notForYou
	}
	if inv.Status != models.InvitationPending {
		return apperrors.NewConflictError("Invitation already responded to.")
	}

	var title, verb string
	switch action {
	case "accept":
		if err := s.invitations.Accept(ctx, inv, studentID); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyInGroup) {
				return apperrors.NewCustomError(apperrors.ErrAlreadyInGroup, "You are already in a group.")
			}
			return err
		}
		title, verb = "Invitation Accepted", "accepted"
	case "reject":
		if err := s.invitations.UpdateStatus(ctx, inv.ID, models.InvitationRejected); err != nil {
			return err
		}
		title, verb = "Invitation Declined", "declined"
	default:
		return apperrors.NewValidationError("Action must be accept or reject.")
	}

	s.logger.Info().Int64("invitationID", inv.ID).Int64("userID", studentID).Str("action", action).Msg("Invitation answered")
	s.notifier.Notify(ctx, inv.InvitedBy, models.RoleStudent, title,
		fmt.Sprintf("%s %s your group invitation.", student.Name, verb),
		"/dashboard/student/my-group")
	return nil
}
