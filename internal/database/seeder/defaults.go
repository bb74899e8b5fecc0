package seeder

func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
	}
}

// WithDemo adds the demo profiles on top of the catalog seeders.
func WithDemo() []Seeder {
	return append(Defaults(), DemoProfilesSeeder{})
}
