package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/course"

	"github.com/google/uuid"
)

type CourseRepository interface {
	ListCourses(ctx context.Context) ([]course.Course, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	CreateEnrollment(ctx context.Context, e course.Enrollment) (course.Enrollment, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]course.Enrollment, error)
	FindEnrollment(ctx context.Context, id uuid.UUID) (course.Enrollment, error)
	UpdateEnrollment(ctx context.Context, e course.Enrollment) (course.Enrollment, error)
}

type PostgresCourseRepository struct {
	db database.DB
}

func NewPostgresCourseRepository(db database.DB) *PostgresCourseRepository {
	return &PostgresCourseRepository{db: db}
}

// ListCourses returns the catalog ordered by title, each with the skills it
// teaches.
func (r *PostgresCourseRepository) ListCourses(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), COALESCE(provider, ''), COALESCE(url, ''),
		        COALESCE(duration_hours, 0), COALESCE(level, ''), created_at
		 FROM courses
		 ORDER BY title ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Course, 0)
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var c course.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Provider, &c.URL, &c.DurationHours, &c.Level, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Skills = []course.TaughtSkill{}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	skillRows, err := r.db.Query(ctx,
		`SELECT cs.course_id, cs.skill_id, s.name, cs.level_taught
		 FROM course_skills cs
		 JOIN skills s ON s.id = cs.skill_id
		 ORDER BY cs.course_id ASC, s.name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer skillRows.Close()

	for skillRows.Next() {
		var courseID uuid.UUID
		var ts course.TaughtSkill
		if err := skillRows.Scan(&courseID, &ts.SkillID, &ts.SkillName, &ts.LevelTaught); err != nil {
			return nil, err
		}
		if i, ok := index[courseID]; ok {
			out[i].Skills = append(out[i].Skills, ts)
		}
	}
	if err := skillRows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const enrollmentSelect = `SELECT uc.id, uc.user_id, uc.course_id, c.title, uc.status, uc.progress,
		 uc.started_at, uc.completed_at, uc.created_at, uc.updated_at
		 FROM user_courses uc
		 JOIN courses c ON c.id = uc.course_id`

func scanEnrollment(row database.Row) (course.Enrollment, error) {
	var e course.Enrollment
	var status string
	err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &e.CourseTitle, &status, &e.Progress,
		&e.StartedAt, &e.CompletedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return course.Enrollment{}, ErrEnrollmentNotFound
		}
		return course.Enrollment{}, err
	}
	e.Status = course.Status(status)
	return e, nil
}

func (r *PostgresCourseRepository) CreateEnrollment(ctx context.Context, e course.Enrollment) (course.Enrollment, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_courses (id, user_id, course_id, status, progress)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.UserID, e.CourseID, string(e.Status), e.Progress,
	)
	if err != nil {
		return course.Enrollment{}, err
	}
	return r.FindEnrollment(ctx, e.ID)
}

func (r *PostgresCourseRepository) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]course.Enrollment, error) {
	rows, err := r.db.Query(ctx, enrollmentSelect+`
		 WHERE uc.user_id = $1
		 ORDER BY uc.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]course.Enrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCourseRepository) FindEnrollment(ctx context.Context, id uuid.UUID) (course.Enrollment, error) {
	return scanEnrollment(r.db.QueryRow(ctx, enrollmentSelect+` WHERE uc.id = $1`, id))
}

func (r *PostgresCourseRepository) UpdateEnrollment(ctx context.Context, e course.Enrollment) (course.Enrollment, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_courses
		 SET status = $1, progress = $2, started_at = $3, completed_at = $4, updated_at = now()
		 WHERE id = $5 AND user_id = $6`,
		string(e.Status), e.Progress, e.StartedAt, e.CompletedAt, e.ID, e.UserID,
	)
	if err != nil {
		return course.Enrollment{}, err
	}
	if affected == 0 {
		return course.Enrollment{}, ErrEnrollmentNotFound
	}
	return r.FindEnrollment(ctx, e.ID)
}
