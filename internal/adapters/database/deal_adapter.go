package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

var dealColumns = []any{
	"id", "skill_id", "requester_id", "provider_id", "status",
	"created_at", "start_date", "end_date", "updated_at",
}

// DealAdapter implements the DealRepository interface
type DealAdapter struct {
	run runner
}

// NewDealAdapter creates a new deal adapter on the pooled connection
func NewDealAdapter(client *postgres.Client) repositories.DealRepository {
	return &DealAdapter{run: client.DB()}
}

func newDealAdapter(run runner) *DealAdapter {
	return &DealAdapter{run: run}
}

// Create creates a new deal
func (a *DealAdapter) Create(ctx context.Context, deal *entities.SkillDeal) error {
	record := goqu.Record{
		"id":           deal.ID,
		"skill_id":     deal.SkillID,
		"requester_id": deal.RequesterID,
		"provider_id":  deal.ProviderID,
		"status":       deal.Status,
		"created_at":   deal.CreatedAt,
		"start_date":   deal.StartDate,
		"end_date":     deal.EndDate,
		"updated_at":   deal.UpdatedAt,
	}

	query, args, err := builder.Insert("skill_deals").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a pending deal already exists for this skill and requester")
		}
		return apperrors.NewInternalError("failed to create deal", err)
	}

	return nil
}

// GetByID retrieves a deal by ID
func (a *DealAdapter) GetByID(ctx context.Context, id string) (*entities.SkillDeal, error) {
	query, args, err := builder.Select(dealColumns...).
		From("skill_deals").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	deal, err := scanDeal(a.run.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("deal with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get deal", err)
	}

	return deal, nil
}

// PendingExists reports whether a pending deal already exists for the
// (skill, provider, requester) triple
func (a *DealAdapter) PendingExists(ctx context.Context, skillID, providerID, requesterID string) (bool, error) {
	query, args, err := builder.Select(goqu.COUNT("*")).
		From("skill_deals").
		Where(goqu.Ex{
			"skill_id":     skillID,
			"provider_id":  providerID,
			"requester_id": requesterID,
			"status":       entities.DealStatusPending,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.run.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check pending deals", err)
	}

	return count > 0, nil
}

// UpdateStatus moves a deal between statuses with a compare-and-swap on the
// expected current status. Zero rows affected means a concurrent transition
// got there first; the caller receives false and must abort.
func (a *DealAdapter) UpdateStatus(ctx context.Context, id string, from, to entities.DealStatus, startDate, endDate *time.Time) (bool, error) {
	record := goqu.Record{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if startDate != nil {
		record["start_date"] = *startDate
	}
	if endDate != nil {
		record["end_date"] = *endDate
	}

	query, args, err := builder.Update("skill_deals").
		Set(record).
		Where(goqu.Ex{"id": id, "status": from}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to update deal status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// ListForUser retrieves deals the user participates in
func (a *DealAdapter) ListForUser(ctx context.Context, userID string, filter repositories.DealFilter) ([]*entities.SkillDeal, error) {
	ds := builder.Select(dealColumns...).From("skill_deals")

	switch filter.Role {
	case entities.DealRoleProvider:
		ds = ds.Where(goqu.Ex{"provider_id": userID})
	case entities.DealRoleRequester:
		ds = ds.Where(goqu.Ex{"requester_id": userID})
	default:
		ds = ds.Where(goqu.Or(
			goqu.Ex{"provider_id": userID},
			goqu.Ex{"requester_id": userID},
		))
	}

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list deals", err)
	}
	defer rows.Close()

	var deals []*entities.SkillDeal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan deal", err)
		}
		deals = append(deals, deal)
	}

	return deals, nil
}

// HasCompletedDeal reports whether the user has a completed deal for the
// skill as the requester
func (a *DealAdapter) HasCompletedDeal(ctx context.Context, skillID, requesterID string) (bool, error) {
	query, args, err := builder.Select(goqu.COUNT("*")).
		From("skill_deals").
		Where(goqu.Ex{
			"skill_id":     skillID,
			"requester_id": requesterID,
			"status":       entities.DealStatusCompleted,
		}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int64
	if err := a.run.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check completed deals", err)
	}

	return count > 0, nil
}

// CountByStatusAndRole returns per-(status, role) deal counts for a user.
// Recomputed on every call; dashboard badges tolerate no staleness.
func (a *DealAdapter) CountByStatusAndRole(ctx context.Context, userID string) ([]repositories.DealStatusCount, error) {
	var counts []repositories.DealStatusCount

	roles := []struct {
		role   entities.DealRole
		column string
	}{
		{entities.DealRoleProvider, "provider_id"},
		{entities.DealRoleRequester, "requester_id"},
	}

	for _, r := range roles {
		query, args, err := builder.Select("status", goqu.COUNT("*").As("count")).
			From("skill_deals").
			Where(goqu.Ex{r.column: userID}).
			GroupBy("status").
			ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build count query", err)
		}

		rows, err := a.run.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to count deals", err)
		}

		for rows.Next() {
			count := repositories.DealStatusCount{Role: r.role}
			if err := rows.Scan(&count.Status, &count.Count); err != nil {
				rows.Close()
				return nil, apperrors.NewInternalError("failed to scan deal count", err)
			}
			counts = append(counts, count)
		}
		rows.Close()
	}

	return counts, nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*entities.SkillDeal, error) {
	deal := &entities.SkillDeal{}
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&deal.ID,
		&deal.SkillID,
		&deal.RequesterID,
		&deal.ProviderID,
		&deal.Status,
		&deal.CreatedAt,
		&startDate,
		&endDate,
		&deal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		deal.StartDate = &startDate.Time
	}
	if endDate.Valid {
		deal.EndDate = &endDate.Time
	}

	return deal, nil
}
