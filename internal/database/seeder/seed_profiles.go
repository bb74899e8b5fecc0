package seeder

import (
	"context"
	"fmt"

	"cofounder-match/internal/database"
	"cofounder-match/internal/domain/profile"
	"cofounder-match/internal/domain/skill"

	"github.com/google/uuid"
)

var demoNamespace = uuid.MustParse("6f1b8a4e-2c7d-4e59-9a53-0d1c8b7e2f40")

// DemoUserID returns the stable id of a demo profile.
func DemoUserID(handle string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte("demo:"+handle))
}

type demoSkill struct {
	Slug     string
	Level    skill.Level
	Priority skill.Priority
}

type demoProfile struct {
	Handle       string
	Name         string
	City         string
	Bio          string
	Role         profile.Role
	Availability profile.Availability
	Ambition     profile.Ambition
	Owned        []demoSkill
	Wanted       []demoSkill
}

var demoProfiles = []demoProfile{
	{
		Handle: "marie", Name: "Marie Dupont", City: "Paris",
		Bio:  "Eight years of product management, ex-Google. Wants products with a positive social impact.",
		Role: profile.RoleProduct, Availability: profile.AvailabilityFullTime, Ambition: profile.AmbitionUnicorn,
		Owned:  []demoSkill{{Slug: "pm", Level: skill.LevelExpert}, {Slug: "ux", Level: skill.LevelExpert}, {Slug: "agile", Level: skill.LevelIntermediate}},
		Wanted: []demoSkill{{Slug: "backend", Priority: skill.PriorityMustHave}, {Slug: "frontend", Priority: skill.PriorityMustHave}, {Slug: "growth", Priority: skill.PriorityNiceToHave}},
	},
	{
		Handle: "thomas", Name: "Thomas Bernard", City: "Lyon",
		Bio:  "Former CTO of a B2B SaaS startup. Looking for the next ambitious tech project.",
		Role: profile.RoleTechnical, Availability: profile.AvailabilityFullTime, Ambition: profile.AmbitionUnicorn,
		Owned:  []demoSkill{{Slug: "backend", Level: skill.LevelExpert}, {Slug: "devops", Level: skill.LevelExpert}, {Slug: "frontend", Level: skill.LevelIntermediate}, {Slug: "data", Level: skill.LevelIntermediate}},
		Wanted: []demoSkill{{Slug: "sales", Priority: skill.PriorityMustHave}, {Slug: "strategy", Priority: skill.PriorityMustHave}, {Slug: "fundraising", Priority: skill.PriorityNiceToHave}},
	},
	{
		Handle: "sophie", Name: "Sophie Martin", City: "Paris",
		Bio:  "Marketing director at a scale-up. Growth and acquisition background, ready to start something.",
		Role: profile.RoleMarketing, Availability: profile.AvailabilityPartTime, Ambition: profile.AmbitionGrowth,
		Owned:  []demoSkill{{Slug: "growth", Level: skill.LevelExpert}, {Slug: "seo", Level: skill.LevelExpert}, {Slug: "content", Level: skill.LevelIntermediate}, {Slug: "social", Level: skill.LevelIntermediate}},
		Wanted: []demoSkill{{Slug: "frontend", Priority: skill.PriorityMustHave}, {Slug: "backend", Priority: skill.PriorityMustHave}, {Slug: "pm", Priority: skill.PriorityNiceToHave}},
	},
	{
		Handle: "lucas", Name: "Lucas Petit", City: "Bordeaux",
		Bio:  "Serial founder with two exits. Strong on sales and fundraising.",
		Role: profile.RoleBusiness, Availability: profile.AvailabilityFullTime, Ambition: profile.AmbitionUnicorn,
		Owned:  []demoSkill{{Slug: "sales", Level: skill.LevelExpert}, {Slug: "fundraising", Level: skill.LevelExpert}, {Slug: "strategy", Level: skill.LevelIntermediate}},
		Wanted: []demoSkill{{Slug: "backend", Priority: skill.PriorityMustHave}, {Slug: "mobile", Priority: skill.PriorityNiceToHave}},
	},
	{
		Handle: "emma", Name: "Emma Leroy", City: "Nantes",
		Bio:  "Mobile engineer, evenings and weekends for now. Building toward a sustainable business.",
		Role: profile.RoleTechnical, Availability: profile.AvailabilityEveningsWeekends, Ambition: profile.AmbitionLifestyle,
		Owned:  []demoSkill{{Slug: "mobile", Level: skill.LevelExpert}, {Slug: "frontend", Level: skill.LevelIntermediate}},
		Wanted: []demoSkill{{Slug: "pm", Priority: skill.PriorityMustHave}, {Slug: "branding", Priority: skill.PriorityNiceToHave}},
	},
	{
		Handle: "hugo", Name: "Hugo Moreau", City: "Lille",
		Bio:  "Finance and operations generalist. Comfortable with the unglamorous parts of running a company.",
		Role: profile.RoleGeneralist, Availability: profile.AvailabilityPartTime, Ambition: profile.AmbitionGrowth,
		Owned:  []demoSkill{{Slug: "finance", Level: skill.LevelExpert}, {Slug: "ops", Level: skill.LevelIntermediate}, {Slug: "legal", Level: skill.LevelBeginner}},
		Wanted: []demoSkill{{Slug: "backend", Priority: skill.PriorityNiceToHave}, {Slug: "growth", Priority: skill.PriorityMustHave}},
	},
}

type DemoProfilesSeeder struct{}

func (DemoProfilesSeeder) Name() string { return "demo_profiles" }

func (DemoProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "profiles", "user_id", "name", "role", "availability", "ambition", "is_active"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "user_skills", "user_id", "skill_id", "kind", "level", "priority"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, p := range demoProfiles {
			uid := DemoUserID(p.Handle)
			_, err := tx.Exec(
				ctx,
				`INSERT INTO profiles (user_id, name, city, bio, role, availability, ambition, is_active)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
				 ON CONFLICT (user_id) DO UPDATE SET
					name = EXCLUDED.name, city = EXCLUDED.city, bio = EXCLUDED.bio,
					role = EXCLUDED.role, availability = EXCLUDED.availability,
					ambition = EXCLUDED.ambition, updated_at = now()`,
				uid, p.Name, p.City, p.Bio, string(p.Role), string(p.Availability), string(p.Ambition),
			)
			if err != nil {
				return fmt.Errorf("profile %s: %w", p.Handle, err)
			}

			for _, s := range p.Owned {
				if err := insertDemoSkill(ctx, tx, uid, s.Slug, skill.KindOwned, string(s.Level), nil); err != nil {
					return fmt.Errorf("profile %s: %w", p.Handle, err)
				}
			}
			for _, s := range p.Wanted {
				if err := insertDemoSkill(ctx, tx, uid, s.Slug, skill.KindWanted, nil, string(s.Priority)); err != nil {
					return fmt.Errorf("profile %s: %w", p.Handle, err)
				}
			}
		}
		return nil
	})
}

func insertDemoSkill(ctx context.Context, tx database.Tx, userID uuid.UUID, slug, kind string, level, priority any) error {
	_, err := tx.Exec(
		ctx,
		`INSERT INTO user_skills (user_id, skill_id, kind, level, priority)
		 SELECT $1, s.id, $3, $4, $5 FROM skills s WHERE s.slug = $2
		 ON CONFLICT (user_id, skill_id, kind) DO NOTHING`,
		userID, slug, kind, level, priority,
	)
	if err != nil {
		return fmt.Errorf("skill %s: %w", slug, err)
	}
	return nil
}
