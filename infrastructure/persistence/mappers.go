package persistence

import (
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/internal/database"
)

func rawToModel(p posting.RawPosting) RawPostingModel {
	return RawPostingModel{
		Platform:    p.Platform(),
		RoleQuery:   p.RoleQuery(),
		Title:       p.Title(),
		Description: p.Description(),
		Location:    p.Location(),
		SalaryRaw:   p.SalaryRaw(),
		Company:     p.Company(),
		PublishedAt: p.PublishedAt(),
		URL:         p.URL(),
		State:       string(p.State()),
		ProcessedAt: p.ProcessedAt(),
	}
}

func rawFromModel(m RawPostingModel) posting.RawPosting {
	p := posting.NewRawPosting(
		m.Platform, m.RoleQuery, m.Title, m.Description, m.Location,
		m.SalaryRaw, m.Company, m.PublishedAt, m.URL,
	)
	if m.State == string(posting.StateProcessed) && m.ProcessedAt != nil {
		p = p.WithState(posting.StateProcessed, *m.ProcessedAt)
	}
	return p
}

func classifiedToModel(p posting.ClassifiedPosting) ClassifiedPostingModel {
	return ClassifiedPostingModel{
		Platform:    p.Platform(),
		RoleQuery:   p.RoleQuery(),
		PublishedAt: p.PublishedAt(),
		Title:       p.Title(),
		Location:    p.Location(),
		Description: p.Description(),
		Salary:      p.Salary(),
		Company:     p.Company(),
		Skills:      database.StringList(p.Skills()),
		Seniority:   string(p.Seniority()),
		URL:         p.URL(),
		Embedding:   database.Vector(p.Embedding()),
	}
}

func classifiedFromModel(m ClassifiedPostingModel) posting.ClassifiedPosting {
	return posting.NewClassifiedPosting(
		m.Platform, m.RoleQuery, m.PublishedAt, m.Title, m.Location,
		m.Description, m.Salary, m.Company, []string(m.Skills),
		posting.Seniority(m.Seniority), m.URL, []float64(m.Embedding),
	).WithCreatedAt(m.CreatedAt)
}
