package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/projecthub/internal/app/models"
	"github.com/yigit/projecthub/internal/db"
	"github.com/yigit/projecthub/internal/pkg/apperrors"
	"github.com/yigit/projecthub/internal/pkg/dberrors"
	"github.com/yigit/projecthub/internal/pkg/logger"
)

// MeetingRepository handles guide meetings and their attendance
type MeetingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{
		db: db,
		sb: newStatementBuilder(),
	}
}

func (r *MeetingRepository) selectMeetings() squirrel.SelectBuilder {
	return r.sb.Select("pm.id", "pm.group_id", "pm.guide_id", "pm.meeting_date", "pm.purpose", "pm.location",
		"pm.description", "pm.status", "pm.status_description", "pm.status_datetime", "pm.created_at",
		"pg.name", "st.name",
		"(SELECT COUNT(*) FROM meeting_attendance a WHERE a.meeting_id = pm.id AND a.is_present)",
		"(SELECT COUNT(*) FROM meeting_attendance a WHERE a.meeting_id = pm.id)").
		From("project_meetings pm").
		Join("project_groups pg ON pg.id = pm.group_id").
		Join("staff st ON st.id = pm.guide_id")
}

func scanMeeting(row pgx.Row) (*models.Meeting, error) {
	var m models.Meeting
	err := row.Scan(&m.ID, &m.GroupID, &m.GuideID, &m.MeetingDate, &m.Purpose, &m.Location,
		&m.Description, &m.Status, &m.StatusDescription, &m.StatusDatetime, &m.CreatedAt,
		&m.GroupName, &m.GuideName, &m.PresentCount, &m.TotalMarked)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MeetingRepository) queryMeetings(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Meeting, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]*models.Meeting, 0)
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// attachAttendance loads attendance rows for meetings, optionally limited to one student
func (r *MeetingRepository) attachAttendance(ctx context.Context, meetings []*models.Meeting, studentID *int64) error {
	if len(meetings) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Meeting, len(meetings))
	ids := make([]int64, 0, len(meetings))
	for _, m := range meetings {
		m.Attendance = make([]models.Attendance, 0)
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	where := squirrel.Eq{"a.meeting_id": ids}
	if studentID != nil {
		where["a.student_id"] = *studentID
	}
	sql, args, err := r.sb.Select("a.meeting_id", "a.student_id", "s.name", "a.is_present", "a.remarks").
		From("meeting_attendance a").
		Join("students s ON s.id = a.student_id").
		Where(where).
		OrderBy("s.name").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading attendance: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.MeetingID, &a.StudentID, &a.StudentName, &a.IsPresent, &a.Remarks); err != nil {
			return err
		}
		if m, ok := byID[a.MeetingID]; ok {
			m.Attendance = append(m.Attendance, a)
		}
	}
	return rows.Err()
}

// Create schedules a meeting
func (r *MeetingRepository) Create(ctx context.Context, m *models.Meeting) error {
	sql, args, err := r.sb.Insert("project_meetings").
		Columns("group_id", "guide_id", "meeting_date", "purpose", "location", "description", "status").
		Values(m.GroupID, m.GuideID, m.MeetingDate, m.Purpose, m.Location, m.Description, m.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrGroupNotFound
		}
		logger.Error().Err(err).Int64("groupID", m.GroupID).Msg("Error creating meeting")
		return fmt.Errorf("error creating meeting: %w", err)
	}
	return nil
}

// GetByID retrieves a meeting with its full attendance
func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*models.Meeting, error) {
	sql, args, err := r.selectMeetings().Where(squirrel.Eq{"pm.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	m, err := scanMeeting(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("error retrieving meeting: %w", err)
	}
	if err := r.attachAttendance(ctx, []*models.Meeting{m}, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// Update rewrites a meeting's details and status
func (r *MeetingRepository) Update(ctx context.Context, m *models.Meeting) error {
	sql, args, err := r.sb.Update("project_meetings").
		Set("meeting_date", m.MeetingDate).
		Set("purpose", m.Purpose).
		Set("location", m.Location).
		Set("description", m.Description).
		Set("status", m.Status).
		Set("status_description", m.StatusDescription).
		Set("status_datetime", m.StatusDatetime).
		Where(squirrel.Eq{"id": m.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMeetingNotFound
	}
	return nil
}

// ListByGuide returns a faculty member's meetings, newest first, with attendance
func (r *MeetingRepository) ListByGuide(ctx context.Context, guideID int64) ([]*models.Meeting, error) {
	meetings, err := r.queryMeetings(ctx, r.selectMeetings().
		Where(squirrel.Eq{"pm.guide_id": guideID}).
		OrderBy("pm.meeting_date DESC"))
	if err != nil {
		return nil, err
	}
	return meetings, r.attachAttendance(ctx, meetings, nil)
}

// ListByGroup returns a group's meetings, newest first, with the given student's attendance only
func (r *MeetingRepository) ListByGroup(ctx context.Context, groupID, studentID int64) ([]*models.Meeting, error) {
	meetings, err := r.queryMeetings(ctx, r.selectMeetings().
		Where(squirrel.Eq{"pm.group_id": groupID}).
		OrderBy("pm.meeting_date DESC"))
	if err != nil {
		return nil, err
	}
	return meetings, r.attachAttendance(ctx, meetings, &studentID)
}

// ListAll returns every meeting, newest first, with attendance counts
func (r *MeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	return r.queryMeetings(ctx, r.selectMeetings().OrderBy("pm.meeting_date DESC"))
}

// RecordAttendance completes the meeting and upserts one attendance row per entry in a single transaction
func (r *MeetingRepository) RecordAttendance(ctx context.Context, meetingID int64, entries []models.Attendance) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE project_meetings SET status = $1, status_datetime = $2 WHERE id = $3`,
			models.MeetingCompleted, time.Now(), meetingID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrMeetingNotFound
		}

		if len(entries) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, e := range entries {
			batch.Queue(`
				INSERT INTO meeting_attendance (meeting_id, student_id, is_present, remarks)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (meeting_id, student_id)
				DO UPDATE SET is_present = EXCLUDED.is_present, remarks = EXCLUDED.remarks`,
				meetingID, e.StudentID, e.IsPresent, e.Remarks)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrMeetingNotFound) {
			return err
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("meetingID", meetingID).Msg("Error recording attendance")
		return fmt.Errorf("error recording attendance: %w", err)
	}
	return nil
}
