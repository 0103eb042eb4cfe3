package seeder

func Defaults(c Catalog) []Seeder {
	out := []Seeder{
		SkillsSeeder{Skills: c.Skills},
		CoursesSeeder{Courses: c.Courses},
	}
	if c.Demo != nil {
		out = append(out, DemoJobsSeeder{Demo: *c.Demo})
	}
	return out
}
