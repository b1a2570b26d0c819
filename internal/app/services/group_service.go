package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/app/models/dto"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/filestorage"
	"github.com/yigit/projecthub/internal/pkg/helpers"
	"github.com/yigit/projecthub/internal/pkg/validation"
)

// proposalSubPath is where proposal files are stored under the upload root
const proposalSubPath = "proposals"

// GroupService handles project groups, proposals and guide assignment
type GroupService struct {
	groups   GroupStore
	staff    StaffStore
	authz    GroupAuthorizer
	notifier Notifier
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groups GroupStore, staff StaffStore, authz GroupAuthorizer, notifier Notifier, storage filestorage.FileStorage, logger zerolog.Logger) *GroupService {
	return &GroupService{
		groups:   groups,
		staff:    staff,
		authz:    authz,
		notifier: notifier,
		storage:  storage,
		logger:   logger.With().Str("service", "group").Logger(),
	}
}

func validateProposal(req *dto.CreateGroupRequest) error {
	rules := []struct {
		value string
		min   int
		msg   string
	}{
		{req.GroupName, validation.GroupNameMinLength, "Group name must be at least 3 characters."},
		{req.ProjectTitle, validation.ProjectTitleMinLength, "Project title must be at least 5 characters."},
		{req.Description, validation.DescriptionMinLength, "Description must be at least 50 characters."},
		{req.Objectives, validation.ProposalSectionMin, "Objectives must be at least 30 characters."},
		{req.Methodology, validation.ProposalSectionMin, "Methodology must be at least 30 characters."},
		{req.ExpectedOutcomes, validation.ProposalSectionMin, "Expected outcomes must be at least 30 characters."},
	}
	for _, r := range rules {
		if !validation.MinLength(r.value, r.min) {
			return apperrors.NewValidationError(r.msg)
		}
	}
	if req.ProjectTypeID <= 0 || req.GuideID <= 0 {
		return apperrors.NewValidationError("Project type and guide are required.")
	}
	return nil
}

// proposalSkills returns the skills of a proposal. A form sends them as a JSON array string;
// an unparseable string yields no skills.
func proposalSkills(req *dto.CreateGroupRequest) []string {
	skills := req.Skills
	if len(skills) == 0 && strings.TrimSpace(req.SkillsJSON) != "" {
		if err := json.Unmarshal([]byte(req.SkillsJSON), &skills); err != nil {
			skills = nil
		}
	}
	return validation.NormalizeSkills(skills)
}

func alreadyInGroup() error {
	return apperrors.NewCustomError(apperrors.ErrAlreadyInGroup, "You are already in a group.")
}

// CreateGroup creates a pending group with the student as leader and notifies the chosen guide
func (s *GroupService) CreateGroup(ctx context.Context, studentID int64, req *dto.CreateGroupRequest) (*models.ProjectGroup, error) {
	if err := validateProposal(req); err != nil {
		return nil, err
	}

	if _, err := s.groups.GetMembership(ctx, studentID); err == nil {
		return nil, alreadyInGroup()
	} else if !errors.Is(err, apperrors.ErrNotInGroup) {
		return nil, err
	}

	if req.GuideID != 0 {
		if _, err := s.ensureFaculty(ctx, req.GuideID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	group := &models.ProjectGroup{
		Name:                strings.TrimSpace(req.GroupName),
		ProjectTitle:        strings.TrimSpace(req.ProjectTitle),
		ProjectTypeID:       helpers.NullIfZero(req.ProjectTypeID),
		GuideID:             helpers.NullIfZero(req.GuideID),
		DepartmentID:        helpers.NullIfZero(req.DepartmentID),
		AcademicYearID:      helpers.NullIfZero(req.AcademicYearID),
		Description:         strings.TrimSpace(req.Description),
		Objectives:          strings.TrimSpace(req.Objectives),
		Methodology:         strings.TrimSpace(req.Methodology),
		ExpectedOutcomes:    strings.TrimSpace(req.ExpectedOutcomes),
		Skills:              proposalSkills(req),
		ProposalSubmittedAt: &now,
		Status:              models.GroupStatusPending,
	}

	if req.ProposalFile != nil && s.storage != nil {
		info, err := s.storage.SaveFileWithPath(req.ProposalFile, proposalSubPath)
		if err != nil {
			return nil, err
		}
		group.ProposalFilePath = &info.Path
	}

	if err := s.groups.CreateWithLeader(ctx, group, studentID); err != nil {
		if group.ProposalFilePath != nil {
			if delErr := s.storage.DeleteFile(*group.ProposalFilePath); delErr != nil {
				s.logger.Warn().Err(delErr).Str("path", *group.ProposalFilePath).Msg("Failed to remove orphaned proposal file")
			}
		}
		switch {
		case errors.Is(err, apperrors.ErrAlreadyInGroup):
			return nil, alreadyInGroup()
		case errors.Is(err, apperrors.ErrReferenceNotExists):
			return nil, apperrors.NewValidationError("Selected project type, guide, department or academic year does not exist.")
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.Info().Int64("groupID", group.ID).Int64("userID", studentID).Msg("Project group created")

	s.notifier.Notify(ctx, req.GuideID, models.RoleFaculty, "New Proposal Submitted",
		fmt.Sprintf("%s submitted the proposal \"%s\" for your review.", group.Name, group.ProjectTitle),
		fmt.Sprintf("/dashboard/faculty/groups/%d", group.ID))

	return s.groups.GetByID(ctx, group.ID)
}

// MyGroup returns the student's group, or nil when they have none
func (s *GroupService) MyGroup(ctx context.Context, studentID int64) (*models.ProjectGroup, error) {
	membership, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return nil, nil
		}
		return nil, err
	}
	return s.groups.GetByID(ctx, membership.GroupID)
}

// GetGroup returns a group's details to its members, its guide or an admin
func (s *GroupService) GetGroup(ctx context.Context, groupID, userID int64, role models.Role) (*models.ProjectGroup, error) {
	if err := s.authz.ValidateGroupAccess(ctx, groupID, userID, role); err != nil {
		return nil, err
	}
	return s.groups.GetByID(ctx, groupID)
}

// ListGuidedGroups returns the groups a faculty member guides, ordered by name
func (s *GroupService) ListGuidedGroups(ctx context.Context, facultyID int64) ([]*models.ProjectGroup, error) {
	return s.groups.ListByGuide(ctx, facultyID)
}

// ListGroups returns a filtered page of all groups
func (s *GroupService) ListGroups(ctx context.Context, filter models.GroupFilter) ([]*models.ProjectGroup, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, apperrors.NewValidationError("Invalid group status.")
	}
	return s.groups.List(ctx, filter)
}

// ensureFaculty checks that guideID is a faculty member
func (s *GroupService) ensureFaculty(ctx context.Context, guideID int64) (*models.Staff, error) {
	guide, err := s.staff.GetByID(ctx, guideID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaffNotFound) {
			return nil, apperrors.NewValidationError("Selected guide is not a faculty member.")
		}
		return nil, err
	}
	if guide.Role != models.RoleFaculty {
		return nil, apperrors.NewValidationError("Selected guide is not a faculty member.")
	}
	return guide, nil
}

func (s *GroupService) assignGuide(ctx context.Context, groupID, guideID int64) error {
	if _, err := s.ensureFaculty(ctx, guideID); err != nil {
		return err
	}
	if err := s.groups.UpdateGuide(ctx, groupID, guideID); err != nil {
		return err
	}

	s.logger.Info().Int64("groupID", groupID).Int64("guideID", guideID).Msg("Guide assigned")
	s.notifier.Notify(ctx, guideID, models.RoleFaculty, "Group Assigned",
		"You have been assigned as guide of a project group.",
		fmt.Sprintf("/dashboard/faculty/groups/%d", groupID))
	return nil
}

// AssignGuideAsLeader lets a group leader choose their guide
func (s *GroupService) AssignGuideAsLeader(ctx context.Context, studentID, guideID int64) error {
	membership, err := s.groups.GetMembership(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotInGroup) {
			return apperrors.NewCustomError(apperrors.ErrNotInGroup, "You are not in a group.")
		}
		return err
	}
	if !membership.IsLeader {
		return apperrors.NewForbiddenError("Only the group leader can assign a guide.")
	}
	return s.assignGuide(ctx, membership.GroupID, guideID)
}

// AssignGuideAsAdmin sets any group's guide
func (s *GroupService) AssignGuideAsAdmin(ctx context.Context, groupID, guideID int64) error {
	if _, err := s.groups.GetGuideID(ctx, groupID); err != nil {
		return err
	}
	return s.assignGuide(ctx, groupID, guideID)
}

// ReviewGroup approves or rejects a proposal and notifies the members.
// Faculty may only review groups they guide.
func (s *GroupService) ReviewGroup(ctx context.Context, groupID, reviewerID int64, role models.Role, req *dto.ReviewGroupRequest) error {
	if err := s.authz.ValidateGuide(ctx, groupID, reviewerID, role); err != nil {
		return err
	}

	var (
		status models.GroupStatus
		reason *string
	)
	switch req.Action {
	case "approve":
		status = models.GroupStatusApproved
	case "reject":
		status = models.GroupStatusRejected
		reason = helpers.NullIfEmpty(req.RejectionReason)
	default:
		return apperrors.NewValidationError("Action must be approve or reject.")
	}

	if err := s.groups.Review(ctx, groupID, status, reviewerID, reason); err != nil {
		return err
	}
	s.logger.Info().Int64("groupID", groupID).Int64("userID", reviewerID).Str("status", string(status)).Msg("Proposal reviewed")

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		s.logger.Error().Err(err).Int64("groupID", groupID).Msg("Failed to load members for review notification")
		return nil
	}

	title, message := "Proposal Approved", "Your project proposal has been approved."
	if status == models.GroupStatusRejected {
		title, message = "Proposal Rejected", "Your project proposal has been rejected."
		if reason != nil {
			message = fmt.Sprintf("Your project proposal has been rejected: %s", *reason)
		}
	}
	notifyStudents(ctx, s.notifier, members, 0, title, message, "/dashboard/student/my-group")
	return nil
}
