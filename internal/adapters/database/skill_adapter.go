package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

var skillColumns = []any{
	"id", "name", "category", "level", "description",
	"owner_id", "skill_type", "rating", "created_at",
}

// SkillAdapter implements the SkillRepository interface
type SkillAdapter struct {
	run runner
}

// NewSkillAdapter creates a new skill adapter on the pooled connection
func NewSkillAdapter(client *postgres.Client) repositories.SkillRepository {
	return &SkillAdapter{run: client.DB()}
}

func newSkillAdapter(run runner) *SkillAdapter {
	return &SkillAdapter{run: run}
}

// Create creates a new skill
func (a *SkillAdapter) Create(ctx context.Context, skill *entities.Skill) error {
	record := goqu.Record{
		"id":          skill.ID,
		"name":        skill.Name,
		"category":    skill.Category,
		"level":       skill.Level,
		"description": skill.Description,
		"owner_id":    skill.OwnerID,
		"skill_type":  skill.SkillType,
		"rating":      skill.Rating,
		"created_at":  skill.CreatedAt,
	}

	query, args, err := builder.Insert("skills").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create skill", err)
	}

	return nil
}

// GetByID retrieves a skill by ID
func (a *SkillAdapter) GetByID(ctx context.Context, id string) (*entities.Skill, error) {
	query, args, err := builder.Select(skillColumns...).
		From("skills").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	skill := &entities.Skill{}
	err = a.run.QueryRowContext(ctx, query, args...).Scan(
		&skill.ID,
		&skill.Name,
		&skill.Category,
		&skill.Level,
		&skill.Description,
		&skill.OwnerID,
		&skill.SkillType,
		&skill.Rating,
		&skill.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("skill with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get skill", err)
	}

	return skill, nil
}

// UpdateRating overwrites the skill's aggregate rating
func (a *SkillAdapter) UpdateRating(ctx context.Context, id string, rating float64) error {
	query, args, err := builder.Update("skills").
		Set(goqu.Record{"rating": rating}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update skill rating", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("skill with id %s not found", id))
	}

	return nil
}

// ListByOwner retrieves skills owned by a user
func (a *SkillAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Skill, error) {
	query, args, err := builder.Select(skillColumns...).
		From("skills").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list skills", err)
	}
	defer rows.Close()

	var skills []*entities.Skill
	for rows.Next() {
		skill := &entities.Skill{}
		err := rows.Scan(
			&skill.ID,
			&skill.Name,
			&skill.Category,
			&skill.Level,
			&skill.Description,
			&skill.OwnerID,
			&skill.SkillType,
			&skill.Rating,
			&skill.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan skill", err)
		}
		skills = append(skills, skill)
	}

	return skills, nil
}
