package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"skillsync/internal/domain/application"
	"skillsync/internal/domain/course"
	"skillsync/internal/domain/cvanalysis"
	"skillsync/internal/domain/event"
	"skillsync/internal/domain/job"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"
	"skillsync/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errUnique = &pgconn.PgError{Code: "23505"}
	errFK     = &pgconn.PgError{Code: "23503"}
)

func intPtr(v int) *int { return &v }

type memCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	patterns []string
	setErr   error
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = b
	return nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = []byte(value)
	return nil
}

func (c *memCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patterns = append(c.patterns, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.values {
		if strings.HasPrefix(k, prefix) {
			delete(c.values, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type mockUsers struct {
	byID map[uuid.UUID]user.User
	err  error
}

func newMockUsers(users ...user.User) *mockUsers {
	m := &mockUsers{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, m.err
}

func (m *mockUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, m.err
}

func (m *mockUsers) CreateUser(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	m.byID[u.ID] = u
	return nil
}

func (m *mockUsers) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUsers) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUsers) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

type mockSkillRepo struct {
	items     []skill.Skill
	exists    bool
	createErr error
	err       error
}

func (m *mockSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	return m.items, m.err
}

func (m *mockSkillRepo) CreateSkill(_ context.Context, name, category string) (skill.Skill, error) {
	if m.createErr != nil {
		return skill.Skill{}, m.createErr
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: category}
	m.items = append(m.items, s)
	return s, nil
}

func (m *mockSkillRepo) SkillExistsByID(context.Context, uuid.UUID) (bool, error) {
	return m.exists, m.err
}

type mockUserSkillRepo struct {
	items []skill.UserSkill
	err   error
	opErr error
}

func (m *mockUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]skill.UserSkill, 0)
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockUserSkillRepo) Create(_ context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	if m.opErr != nil {
		return skill.UserSkill{}, m.opErr
	}
	us.SkillName = "Go"
	m.items = append(m.items, us)
	return us, nil
}

func (m *mockUserSkillRepo) Update(_ context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	if m.opErr != nil {
		return skill.UserSkill{}, m.opErr
	}
	for i := range m.items {
		if m.items[i].ID == us.ID {
			m.items[i].ProficiencyLevel = us.ProficiencyLevel
			return m.items[i], nil
		}
	}
	return skill.UserSkill{}, repository.ErrUserSkillNotFound
}

func (m *mockUserSkillRepo) Delete(_ context.Context, id uuid.UUID, _ uuid.UUID) error {
	if m.opErr != nil {
		return m.opErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

type mockJobRepo struct {
	jobs      []job.Job
	byTerm    map[string][]job.Job
	created   []repository.JobRequirementInput
	createErr error
	err       error
	searches  [][]string
}

func (m *mockJobRepo) Create(_ context.Context, j job.Job, reqs []repository.JobRequirementInput) (job.Job, error) {
	if m.createErr != nil {
		return job.Job{}, m.createErr
	}
	j.ID = uuid.New()
	m.created = reqs
	m.jobs = append(m.jobs, j)
	return j, nil
}

func (m *mockJobRepo) UpsertByExternalURL(_ context.Context, j job.Job, _ []repository.JobRequirementInput) (job.Job, bool, error) {
	j.ID = uuid.New()
	return j, true, m.err
}

func (m *mockJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	for _, j := range m.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrJobNotFound
}

func (m *mockJobRepo) ListJobs(context.Context, int, int) ([]job.Job, error) {
	return m.jobs, m.err
}

func (m *mockJobRepo) ListByCompany(_ context.Context, companyID uuid.UUID, _, _ int) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for _, j := range m.jobs {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return out, m.err
}

func (m *mockJobRepo) SearchByTerms(_ context.Context, terms []string, _ int) ([]job.Job, error) {
	m.searches = append(m.searches, terms)
	out := make([]job.Job, 0)
	for _, t := range terms {
		out = append(out, m.byTerm[t]...)
	}
	return out, m.err
}

type mockJobSkillRepo struct {
	byJob  map[uuid.UUID][]skill.JobSkill
	demand []skill.Demand
	err    error
}

func (m *mockJobSkillRepo) FindByJobID(_ context.Context, jobID uuid.UUID) ([]skill.JobSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := m.byJob[jobID]
	if out == nil {
		out = []skill.JobSkill{}
	}
	return out, nil
}

func (m *mockJobSkillRepo) FindByJobIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]skill.JobSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]skill.JobSkill, len(ids))
	for _, id := range ids {
		if reqs, ok := m.byJob[id]; ok {
			out[id] = reqs
		}
	}
	return out, nil
}

func (m *mockJobSkillRepo) AggregateDemand(context.Context) ([]skill.Demand, error) {
	return m.demand, m.err
}

type mockCompanyRepo struct {
	byID      map[uuid.UUID]job.Company
	createErr error
}

func newMockCompanies(companies ...job.Company) *mockCompanyRepo {
	m := &mockCompanyRepo{byID: map[uuid.UUID]job.Company{}}
	for _, c := range companies {
		m.byID[c.ID] = c
	}
	return m
}

func (m *mockCompanyRepo) Create(_ context.Context, c job.Company) (job.Company, error) {
	if m.createErr != nil {
		return job.Company{}, m.createErr
	}
	c.ID = uuid.New()
	m.byID[c.ID] = c
	return c, nil
}

func (m *mockCompanyRepo) Update(_ context.Context, c job.Company) (job.Company, error) {
	for id, existing := range m.byID {
		if existing.UserID == c.UserID {
			c.ID = id
			m.byID[id] = c
			return c, nil
		}
	}
	return job.Company{}, repository.ErrCompanyNotFound
}

func (m *mockCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (job.Company, error) {
	c, ok := m.byID[id]
	if !ok {
		return job.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (m *mockCompanyRepo) FindByUserID(_ context.Context, userID uuid.UUID) (job.Company, error) {
	for _, c := range m.byID {
		if c.UserID == userID {
			return c, nil
		}
	}
	return job.Company{}, repository.ErrCompanyNotFound
}

type mockProfileRepo struct {
	students  map[uuid.UUID]user.StudentProfile
	employees map[uuid.UUID]user.EmployeeProfile
}

func newMockProfiles() *mockProfileRepo {
	return &mockProfileRepo{
		students:  map[uuid.UUID]user.StudentProfile{},
		employees: map[uuid.UUID]user.EmployeeProfile{},
	}
}

func (m *mockProfileRepo) CreateStudent(_ context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	if _, ok := m.students[p.UserID]; ok {
		return user.StudentProfile{}, errUnique
	}
	p.ID = uuid.New()
	m.students[p.UserID] = p
	return p, nil
}

func (m *mockProfileRepo) UpdateStudent(_ context.Context, p user.StudentProfile) (user.StudentProfile, error) {
	old, ok := m.students[p.UserID]
	if !ok {
		return user.StudentProfile{}, repository.ErrProfileNotFound
	}
	p.ID = old.ID
	m.students[p.UserID] = p
	return p, nil
}

func (m *mockProfileRepo) FindStudentByUserID(_ context.Context, userID uuid.UUID) (user.StudentProfile, error) {
	p, ok := m.students[userID]
	if !ok {
		return user.StudentProfile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) CreateEmployee(_ context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error) {
	if _, ok := m.employees[p.UserID]; ok {
		return user.EmployeeProfile{}, errUnique
	}
	p.ID = uuid.New()
	m.employees[p.UserID] = p
	return p, nil
}

func (m *mockProfileRepo) UpdateEmployee(_ context.Context, p user.EmployeeProfile) (user.EmployeeProfile, error) {
	old, ok := m.employees[p.UserID]
	if !ok {
		return user.EmployeeProfile{}, repository.ErrProfileNotFound
	}
	p.ID = old.ID
	m.employees[p.UserID] = p
	return p, nil
}

func (m *mockProfileRepo) FindEmployeeByUserID(_ context.Context, userID uuid.UUID) (user.EmployeeProfile, error) {
	p, ok := m.employees[userID]
	if !ok {
		return user.EmployeeProfile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

type mockCourseRepo struct {
	courses     []course.Course
	enrollments map[uuid.UUID]course.Enrollment
}

func newMockCourses(courses ...course.Course) *mockCourseRepo {
	return &mockCourseRepo{courses: courses, enrollments: map[uuid.UUID]course.Enrollment{}}
}

func (m *mockCourseRepo) ListCourses(context.Context) ([]course.Course, error) {
	return m.courses, nil
}

func (m *mockCourseRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range m.courses {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) CreateEnrollment(_ context.Context, e course.Enrollment) (course.Enrollment, error) {
	for _, existing := range m.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return course.Enrollment{}, errUnique
		}
	}
	m.enrollments[e.ID] = e
	return e, nil
}

func (m *mockCourseRepo) ListEnrollments(_ context.Context, userID uuid.UUID) ([]course.Enrollment, error) {
	out := make([]course.Enrollment, 0)
	for _, e := range m.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) FindEnrollment(_ context.Context, id uuid.UUID) (course.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return course.Enrollment{}, repository.ErrEnrollmentNotFound
	}
	return e, nil
}

func (m *mockCourseRepo) UpdateEnrollment(_ context.Context, e course.Enrollment) (course.Enrollment, error) {
	if _, ok := m.enrollments[e.ID]; !ok {
		return course.Enrollment{}, repository.ErrEnrollmentNotFound
	}
	m.enrollments[e.ID] = e
	return e, nil
}

type mockCVRepo struct {
	records map[uuid.UUID]cvanalysis.Record
	latest  *cvanalysis.Record
	err     error
}

func newMockCVRepo() *mockCVRepo {
	return &mockCVRepo{records: map[uuid.UUID]cvanalysis.Record{}}
}

func (m *mockCVRepo) Create(_ context.Context, rec cvanalysis.Record) (cvanalysis.Record, error) {
	if m.err != nil {
		return cvanalysis.Record{}, m.err
	}
	rec.CreatedAt = time.Now().UTC()
	m.records[rec.ID] = rec
	m.latest = &rec
	return rec, nil
}

func (m *mockCVRepo) FindByID(_ context.Context, id uuid.UUID) (cvanalysis.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return cvanalysis.Record{}, repository.ErrAnalysisNotFound
	}
	return rec, nil
}

func (m *mockCVRepo) ListByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]cvanalysis.Record, error) {
	out := make([]cvanalysis.Record, 0)
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockCVRepo) LatestByUser(_ context.Context, userID uuid.UUID) (cvanalysis.Record, error) {
	if m.latest == nil || m.latest.UserID != userID {
		return cvanalysis.Record{}, repository.ErrAnalysisNotFound
	}
	return *m.latest, nil
}

type mockAppRepo struct {
	byID map[uuid.UUID]application.Application
}

func newMockApps() *mockAppRepo {
	return &mockAppRepo{byID: map[uuid.UUID]application.Application{}}
}

func (m *mockAppRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	for _, existing := range m.byID {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return application.Application{}, errUnique
		}
	}
	m.byID[a.ID] = a
	return a, nil
}

func (m *mockAppRepo) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (m *mockAppRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range m.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for _, a := range m.byID {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAppRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, ok := m.byID[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	a.Status = status
	m.byID[id] = a
	return a, nil
}
