package seeder

import (
	"context"
	"fmt"

	"cofounder-match/internal/database"
	"cofounder-match/internal/domain/skill"
)

type catalogItem struct {
	Slug     string
	Name     string
	Category skill.Category
}

var catalog = []catalogItem{
	{Slug: "frontend", Name: "Frontend (React, Vue)", Category: skill.CategoryTech},
	{Slug: "backend", Name: "Backend (Go, Node, Python)", Category: skill.CategoryTech},
	{Slug: "mobile", Name: "Mobile (iOS, Android)", Category: skill.CategoryTech},
	{Slug: "devops", Name: "DevOps & Cloud", Category: skill.CategoryTech},
	{Slug: "data", Name: "Data Science / ML", Category: skill.CategoryTech},
	{Slug: "blockchain", Name: "Blockchain / Web3", Category: skill.CategoryTech},

	{Slug: "pm", Name: "Product Management", Category: skill.CategoryProduct},
	{Slug: "ux-research", Name: "UX Research", Category: skill.CategoryProduct},
	{Slug: "agile", Name: "Agile Methods", Category: skill.CategoryProduct},
	{Slug: "analytics", Name: "Product Analytics", Category: skill.CategoryProduct},

	{Slug: "strategy", Name: "Business Strategy", Category: skill.CategoryBusiness},
	{Slug: "sales", Name: "Sales & Negotiation", Category: skill.CategoryBusiness},
	{Slug: "fundraising", Name: "Fundraising", Category: skill.CategoryBusiness},
	{Slug: "finance", Name: "Finance & Accounting", Category: skill.CategoryBusiness},
	{Slug: "legal", Name: "Legal", Category: skill.CategoryBusiness},

	{Slug: "growth", Name: "Growth Hacking", Category: skill.CategoryMarketing},
	{Slug: "content", Name: "Content Marketing", Category: skill.CategoryMarketing},
	{Slug: "seo", Name: "SEO / SEA", Category: skill.CategoryMarketing},
	{Slug: "social", Name: "Social Media", Category: skill.CategoryMarketing},
	{Slug: "branding", Name: "Branding", Category: skill.CategoryMarketing},

	{Slug: "ui", Name: "UI Design", Category: skill.CategoryDesign},
	{Slug: "ux", Name: "UX Design", Category: skill.CategoryDesign},
	{Slug: "graphic", Name: "Graphic Design", Category: skill.CategoryDesign},
	{Slug: "motion", Name: "Motion Design", Category: skill.CategoryDesign},

	{Slug: "ops", Name: "Operations", Category: skill.CategoryOperations},
	{Slug: "hr", Name: "HR & Recruiting", Category: skill.CategoryOperations},
	{Slug: "customer-success", Name: "Customer Success", Category: skill.CategoryOperations},
	{Slug: "project-management", Name: "Project Management", Category: skill.CategoryOperations},
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "slug", "name", "category", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range catalog {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, slug, name, category) VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category`,
			it.Slug,
			it.Name,
			string(it.Category),
		)
		if err != nil {
			return fmt.Errorf("skill %s: %w", it.Slug, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
