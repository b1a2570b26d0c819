package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// Messages returned when a group check fails
const (
	msgNoGroupAccess = "You do not have access to this group."
	msgNotGuide      = "Only the group's guide can perform this action."
)

// GroupLookup is the part of the group store the authorization checks need
type GroupLookup interface {
	GetGuideID(ctx context.Context, groupID int64) (*int64, error)
	GetMembership(ctx context.Context, studentID int64) (*models.Membership, error)
}

// AuthorizationService answers group-scoped access questions
type AuthorizationService struct {
	groups GroupLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(groups GroupLookup) *AuthorizationService {
	return &AuthorizationService{groups: groups}
}

// IsGuide reports whether staffID guides the group
func (s *AuthorizationService) IsGuide(ctx context.Context, groupID, staffID int64) (bool, error) {
	guideID, err := s.groups.GetGuideID(ctx, groupID)
	if err != nil {
		return false, err
	}
	return guideID != nil && *guideID == staffID, nil
}

// IsMember reports whether the student belongs to the group
func (s *AuthorizationService) IsMember(ctx context.Context, groupID, studentID int64) (bool, error) {
	membership, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return false, nil
		}
		return false, err
	}
	return membership.GroupID == groupID, nil
}

// CanAccessGroup reports whether the account may read a group's details, documents and discussion.
// Admins always can, faculty when they guide the group, students when they are members.
func (s *AuthorizationService) CanAccessGroup(ctx context.Context, groupID, userID int64, role models.Role) (bool, error) {
	switch role {
	case models.RoleAdmin:
		if _, err := s.groups.GetGuideID(ctx, groupID); err != nil {
			return false, err
		}
		return true, nil
	case models.RoleFaculty:
		return s.IsGuide(ctx, groupID, userID)
	case models.RoleStudent:
		return s.IsMember(ctx, groupID, userID)
	default:
		return false, nil
	}
}

// ValidateGroupAccess returns a forbidden error unless CanAccessGroup allows the account
func (s *AuthorizationService) ValidateGroupAccess(ctx context.Context, groupID, userID int64, role models.Role) error {
	ok, err := s.CanAccessGroup(ctx, groupID, userID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrGroupNotFound) {
			return err
		}
		logger.Error().Err(err).Int64("groupID", groupID).Int64("userID", userID).Msg("Error checking group access")
		return fmt.Errorf("failed to check group access: %w", err)
	}
	if !ok {
		return apperrors.NewForbiddenError(msgNoGroupAccess)
	}
	return nil
}

// ValidateGuide allows admins and the group's own guide
func (s *AuthorizationService) ValidateGuide(ctx context.Context, groupID, userID int64, role models.Role) error {
	if role == models.RoleAdmin {
		_, err := s.groups.GetGuideID(ctx, groupID)
		return err
	}
	if role != models.RoleFaculty {
		return apperrors.NewForbiddenError(msgNotGuide)
	}
	ok, err := s.IsGuide(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewForbiddenError(msgNotGuide)
	}
	return nil
}
