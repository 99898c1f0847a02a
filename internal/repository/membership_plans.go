package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func (r *Repository) CreateMembershipPlan(plan *domain.MembershipPlan) error {
	query := `
		INSERT INTO membership_plans (name, days_per_week, monthly_price_cents)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{plan.Name, plan.DaysPerWeek, plan.MonthlyPriceCents}
	dst := []any{&plan.ID, &plan.IsActive, &plan.CreatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMembershipPlanByID(id int64) (*domain.MembershipPlan, error) {
	query := `
		SELECT name, days_per_week, monthly_price_cents, is_active, created_at, version
		FROM membership_plans WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	plan := &domain.MembershipPlan{
		ID: id,
	}

	dst := []any{&plan.Name, &plan.DaysPerWeek, &plan.MonthlyPriceCents, &plan.IsActive, &plan.CreatedAt, &plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *Repository) GetAllMembershipPlans() ([]*domain.MembershipPlan, error) {
	query := `
		SELECT id, name, days_per_week, monthly_price_cents, is_active, created_at, version
		FROM membership_plans
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]*domain.MembershipPlan, 0)
	for rows.Next() {
		plan := &domain.MembershipPlan{}
		dst := []any{&plan.ID, &plan.Name, &plan.DaysPerWeek, &plan.MonthlyPriceCents, &plan.IsActive, &plan.CreatedAt, &plan.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *Repository) UpdateMembershipPlan(plan *domain.MembershipPlan) error {
	query := `
		UPDATE membership_plans
		SET
			name = $1,
			days_per_week = $2,
			monthly_price_cents = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{plan.Name, plan.DaysPerWeek, plan.MonthlyPriceCents, plan.IsActive, plan.ID, plan.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&plan.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteMembershipPlan(id int64) error {
	query := `
		DELETE FROM membership_plans WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
