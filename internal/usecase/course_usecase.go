package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"skillsync/internal/domain/course"
	"skillsync/internal/domain/matching"
	"skillsync/internal/repository"

	"github.com/google/uuid"
)

type CourseRecommendation struct {
	Course        course.Course
	CoveredSkills []string
}

type CourseUsecase interface {
	ListCourses(ctx context.Context) ([]course.Course, error)
	ListMyCourses(ctx context.Context, userID uuid.UUID) ([]course.Enrollment, error)
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, enrollmentID uuid.UUID, progress int) (course.Enrollment, error)
	Recommend(ctx context.Context, userID uuid.UUID) ([]CourseRecommendation, error)
}

type Course struct {
	courses  repository.CourseRepository
	analyses repository.CVAnalysisRepository
	now      func() time.Time
}

func NewCourseUsecase(courses repository.CourseRepository, analyses repository.CVAnalysisRepository) *Course {
	return &Course{courses: courses, analyses: analyses, now: time.Now}
}

func (u *Course) ListCourses(ctx context.Context) ([]course.Course, error) {
	items, err := u.courses.ListCourses(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Course) ListMyCourses(ctx context.Context, userID uuid.UUID) ([]course.Enrollment, error) {
	items, err := u.courses.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Course) Enroll(ctx context.Context, userID, courseID uuid.UUID) (course.Enrollment, error) {
	if courseID == uuid.Nil {
		return course.Enrollment{}, ErrInvalidInput
	}
	exists, err := u.courses.ExistsByID(ctx, courseID)
	if err != nil {
		return course.Enrollment{}, ErrInternal
	}
	if !exists {
		return course.Enrollment{}, ErrCourseNotFound
	}

	created, err := u.courses.CreateEnrollment(ctx, course.Enrollment{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
		Status:   course.StatusNotStarted,
		Progress: 0,
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return course.Enrollment{}, ErrAlreadyEnrolled
		case isForeignKeyViolation(err):
			return course.Enrollment{}, ErrCourseNotFound
		default:
			return course.Enrollment{}, ErrInternal
		}
	}
	return created, nil
}

func (u *Course) UpdateProgress(ctx context.Context, userID, enrollmentID uuid.UUID, progress int) (course.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return course.Enrollment{}, ErrInvalidProgress
	}

	e, err := u.courses.FindEnrollment(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return course.Enrollment{}, ErrEnrollmentNotFound
		}
		return course.Enrollment{}, ErrInternal
	}
	if e.UserID != userID {
		return course.Enrollment{}, ErrForbidden
	}

	e.ApplyProgress(progress, u.now().UTC())
	updated, err := u.courses.UpdateEnrollment(ctx, e)
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return course.Enrollment{}, ErrEnrollmentNotFound
		}
		return course.Enrollment{}, ErrInternal
	}
	return updated, nil
}

// Recommend ranks courses by how many gap skills from the latest CV analysis
// they teach. Courses covering none are left out.
func (u *Course) Recommend(ctx context.Context, userID uuid.UUID) ([]CourseRecommendation, error) {
	latest, err := u.analyses.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, ErrInternal
	}

	courses, err := u.courses.ListCourses(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return RankCourses(courses, latest.SkillGap), nil
}

func RankCourses(courses []course.Course, gap matching.GapReport) []CourseRecommendation {
	wanted := make(map[string]struct{})
	for _, name := range gap.GapSkillNames() {
		if k := matching.NormalizeSkillName(name); k != "" {
			wanted[k] = struct{}{}
		}
	}

	out := make([]CourseRecommendation, 0)
	if len(wanted) == 0 {
		return out
	}

	for _, c := range courses {
		covered := make([]string, 0)
		seen := make(map[string]struct{})
		for _, s := range c.Skills {
			k := matching.NormalizeSkillName(s.SkillName)
			if _, ok := wanted[k]; !ok {
				continue
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			covered = append(covered, s.SkillName)
		}
		if len(covered) == 0 {
			continue
		}
		out = append(out, CourseRecommendation{Course: c, CoveredSkills: covered})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].CoveredSkills) != len(out[j].CoveredSkills) {
			return len(out[i].CoveredSkills) > len(out[j].CoveredSkills)
		}
		return strings.ToLower(out[i].Course.Title) < strings.ToLower(out[j].Course.Title)
	})
	return out
}
