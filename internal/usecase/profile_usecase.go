package usecase

import (
	"context"
	"errors"
	"strings"

	"skillsync/internal/domain/job"
	"skillsync/internal/domain/user"
	"skillsync/internal/repository"

	"github.com/google/uuid"
)

// ProfileInput carries the union of the three profile shapes. Fields that do
// not belong to the caller's user_type are ignored.
type ProfileInput struct {
	FullName       string
	Education      *string
	GraduationYear *int
	University     *string
	Interests      []string
	ResumeURL      *string
	Bio            *string

	CompanyName string
	Industry    *string
	Size        *string
	Website     *string
	Location    *string
	Description *string

	CompanyID         *uuid.UUID
	Position          *string
	Department        *string
	YearsOfExperience *int
}

// Profile holds exactly one non-nil member, picked by UserType.
type Profile struct {
	UserType user.Type
	Student  *user.StudentProfile
	Employee *user.EmployeeProfile
	Company  *job.Company
}

type ProfileUsecase interface {
	CreateMyProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (Profile, error)
	GetMyProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (Profile, error)
}

type ProfileService struct {
	users     user.Repository
	profiles  repository.ProfileRepository
	companies repository.CompanyRepository
}

func NewProfileUsecase(users user.Repository, profiles repository.ProfileRepository, companies repository.CompanyRepository) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, companies: companies}
}

func (u *ProfileService) CreateMyProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (Profile, error) {
	t, err := u.userType(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if err := validateProfileInput(t, &in); err != nil {
		return Profile{}, err
	}

	out := Profile{UserType: t}
	switch t {
	case user.TypeStudent:
		p, err := u.profiles.CreateStudent(ctx, studentFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileCreateError(err)
		}
		out.Student = &p
	case user.TypeEmployee:
		p, err := u.profiles.CreateEmployee(ctx, employeeFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileCreateError(err)
		}
		out.Employee = &p
	case user.TypeEmployer:
		c, err := u.companies.Create(ctx, companyFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileCreateError(err)
		}
		out.Company = &c
	}
	return out, nil
}

func (u *ProfileService) GetMyProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	t, err := u.userType(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	out := Profile{UserType: t}
	switch t {
	case user.TypeStudent:
		p, err := u.profiles.FindStudentByUserID(ctx, userID)
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Student = &p
	case user.TypeEmployee:
		p, err := u.profiles.FindEmployeeByUserID(ctx, userID)
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Employee = &p
	case user.TypeEmployer:
		c, err := u.companies.FindByUserID(ctx, userID)
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Company = &c
	}
	return out, nil
}

func (u *ProfileService) UpdateMyProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (Profile, error) {
	t, err := u.userType(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if err := validateProfileInput(t, &in); err != nil {
		return Profile{}, err
	}

	out := Profile{UserType: t}
	switch t {
	case user.TypeStudent:
		p, err := u.profiles.UpdateStudent(ctx, studentFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Student = &p
	case user.TypeEmployee:
		p, err := u.profiles.UpdateEmployee(ctx, employeeFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Employee = &p
	case user.TypeEmployer:
		c, err := u.companies.Update(ctx, companyFromInput(userID, in))
		if err != nil {
			return Profile{}, mapProfileLookupError(err)
		}
		out.Company = &c
	}
	return out, nil
}

func (u *ProfileService) userType(ctx context.Context, userID uuid.UUID) (user.Type, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	usr, err := u.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternal
	}
	if !usr.UserType.Valid() {
		return "", ErrInternal
	}
	return usr.UserType, nil
}

func validateProfileInput(t user.Type, in *ProfileInput) error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	switch t {
	case user.TypeStudent:
		if in.FullName == "" {
			return ErrInvalidInput
		}
		if in.GraduationYear != nil && (*in.GraduationYear < 1900 || *in.GraduationYear > 2100) {
			return ErrInvalidInput
		}
		interests := make([]string, 0, len(in.Interests))
		for _, s := range in.Interests {
			if s = strings.TrimSpace(s); s != "" {
				interests = append(interests, s)
			}
		}
		in.Interests = interests
	case user.TypeEmployee:
		if in.FullName == "" {
			return ErrInvalidInput
		}
		if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
			return ErrInvalidInput
		}
	case user.TypeEmployer:
		if in.CompanyName == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

func studentFromInput(userID uuid.UUID, in ProfileInput) user.StudentProfile {
	return user.StudentProfile{
		UserID:         userID,
		FullName:       in.FullName,
		Education:      in.Education,
		GraduationYear: in.GraduationYear,
		University:     in.University,
		Interests:      in.Interests,
		ResumeURL:      in.ResumeURL,
		Bio:            in.Bio,
	}
}

func employeeFromInput(userID uuid.UUID, in ProfileInput) user.EmployeeProfile {
	return user.EmployeeProfile{
		UserID:            userID,
		FullName:          in.FullName,
		CompanyID:         in.CompanyID,
		Position:          in.Position,
		Department:        in.Department,
		YearsOfExperience: in.YearsOfExperience,
		Bio:               in.Bio,
	}
}

func companyFromInput(userID uuid.UUID, in ProfileInput) job.Company {
	return job.Company{
		UserID:      userID,
		CompanyName: in.CompanyName,
		Industry:    in.Industry,
		Size:        in.Size,
		Website:     in.Website,
		Location:    in.Location,
		Description: in.Description,
	}
}

func mapProfileCreateError(err error) error {
	switch {
	case isUniqueViolation(err):
		return ErrProfileAlreadyExists
	case isForeignKeyViolation(err):
		return ErrCompanyNotFound
	default:
		return ErrInternal
	}
}

func mapProfileLookupError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProfileNotFound), errors.Is(err, repository.ErrCompanyNotFound):
		return ErrProfileNotFound
	case isForeignKeyViolation(err):
		return ErrCompanyNotFound
	default:
		return ErrInternal
	}
}
