package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

// ProfileRepository stores the student and employee profiles. Employer
// profiles are companies and live in CompanyRepository.
type ProfileRepository interface {
	CreateStudent(ctx context.Context, p user.StudentProfile) (user.StudentProfile, error)
	UpdateStudent(ctx context.Context, p user.StudentProfile) (user.StudentProfile, error)
	FindStudentByUserID(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error)

	CreateEmployee(ctx context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error)
	UpdateEmployee(ctx context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error)
	FindEmployeeByUserID(ctx context.Context, userID uuid.UUID) (user.EmployeeProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const studentReturning = `id, user_id, full_name, education, graduation_year, university, interests, resume_url, bio, created_at, updated_at`

func scanStudent(row database.Row) (user.StudentProfile, error) {
	var p user.StudentProfile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Education, &p.GraduationYear, &p.University, &p.Interests, &p.ResumeURL, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return user.StudentProfile{}, ErrProfileNotFound
		}
		return user.StudentProfile{}, err
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p, nil
}

func (r *PostgresProfileRepository) CreateStudent(ctx context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return scanStudent(r.db.QueryRow(ctx,
		`INSERT INTO student_profiles (id, user_id, full_name, education, graduation_year, university, interests, resume_url, bio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+studentReturning,
		p.ID, p.UserID, p.FullName, p.Education, p.GraduationYear, p.University, p.Interests, p.ResumeURL, p.Bio,
	))
}

func (r *PostgresProfileRepository) UpdateStudent(ctx context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return scanStudent(r.db.QueryRow(ctx,
		`UPDATE student_profiles
		 SET full_name = $1, education = $2, graduation_year = $3, university = $4, interests = $5,
		     resume_url = $6, bio = $7, updated_at = now()
		 WHERE user_id = $8
		 RETURNING `+studentReturning,
		p.FullName, p.Education, p.GraduationYear, p.University, p.Interests, p.ResumeURL, p.Bio, p.UserID,
	))
}

func (r *PostgresProfileRepository) FindStudentByUserID(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	return scanStudent(r.db.QueryRow(ctx, `SELECT `+studentReturning+` FROM student_profiles WHERE user_id = $1`, userID))
}

const employeeReturning = `id, user_id, full_name, company_id, position, department, years_of_experience, bio, created_at, updated_at`

func scanEmployee(row database.Row) (user.EmployeeProfile, error) {
	var p user.EmployeeProfile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.CompanyID, &p.Position, &p.Department, &p.YearsOfExperience, &p.Bio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return user.EmployeeProfile{}, ErrProfileNotFound
		}
		return user.EmployeeProfile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) CreateEmployee(ctx context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return scanEmployee(r.db.QueryRow(ctx,
		`INSERT INTO employee_profiles (id, user_id, full_name, company_id, position, department, years_of_experience, bio)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+employeeReturning,
		p.ID, p.UserID, p.FullName, p.CompanyID, p.Position, p.Department, p.YearsOfExperience, p.Bio,
	))
}

func (r *PostgresProfileRepository) UpdateEmployee(ctx context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error) {
	return scanEmployee(r.db.QueryRow(ctx,
		`UPDATE employee_profiles
		 SET full_name = $1, company_id = $2, position = $3, department = $4, years_of_experience = $5, bio = $6, updated_at = now()
		 WHERE user_id = $7
		 RETURNING `+employeeReturning,
		p.FullName, p.CompanyID, p.Position, p.Department, p.YearsOfExperience, p.Bio, p.UserID,
	))
}

func (r *PostgresProfileRepository) FindEmployeeByUserID(ctx context.Context, userID uuid.UUID) (user.EmployeeProfile, error) {
	return scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeReturning+` FROM employee_profiles WHERE user_id = $1`, userID))
}
