package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func (r *Repository) CreateStudent(student *domain.Student) error {
	query := `
		INSERT INTO students (full_name, contact_phone, membership_plan_id)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{student.FullName, student.ContactPhone, student.MembershipPlanID}
	dst := []any{&student.ID, &student.IsActive, &student.CreatedAt, &student.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetStudentByID(id int64) (*domain.Student, error) {
	query := `
		SELECT full_name, contact_phone, membership_plan_id, is_active, created_at, version
		FROM students WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	student := &domain.Student{
		ID: id,
	}

	dst := []any{&student.FullName, &student.ContactPhone, &student.MembershipPlanID, &student.IsActive, &student.CreatedAt, &student.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return student, nil
}

func (r *Repository) GetAllStudents() ([]*domain.Student, error) {
	query := `
		SELECT id, full_name, contact_phone, membership_plan_id, is_active, created_at, version
		FROM students
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student := &domain.Student{}
		dst := []any{&student.ID, &student.FullName, &student.ContactPhone, &student.MembershipPlanID, &student.IsActive, &student.CreatedAt, &student.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetActiveStudentsWithPlan 返回所有启用中并且会员计划也启用中的学员，附带计划信息
// 每周分布只会基于这些学员进行计算
func (r *Repository) GetActiveStudentsWithPlan() ([]*domain.Student, error) {
	query := `
		SELECT
			s.id,
			s.full_name,
			s.contact_phone,
			s.membership_plan_id,
			s.is_active,
			s.created_at,
			s.version,
			mp.name,
			mp.days_per_week,
			mp.monthly_price_cents,
			mp.is_active,
			mp.created_at,
			mp.version
		FROM students s
		JOIN membership_plans mp ON s.membership_plan_id = mp.id
		WHERE s.is_active = TRUE AND mp.is_active = TRUE
		ORDER BY s.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student := &domain.Student{
			Plan: &domain.MembershipPlan{},
		}
		dst := []any{
			&student.ID,
			&student.FullName,
			&student.ContactPhone,
			&student.MembershipPlanID,
			&student.IsActive,
			&student.CreatedAt,
			&student.Version,
			&student.Plan.Name,
			&student.Plan.DaysPerWeek,
			&student.Plan.MonthlyPriceCents,
			&student.Plan.IsActive,
			&student.Plan.CreatedAt,
			&student.Plan.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		student.Plan.ID = student.MembershipPlanID
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

func (r *Repository) UpdateStudent(student *domain.Student) error {
	query := `
		UPDATE students
		SET
			full_name = $1,
			contact_phone = $2,
			membership_plan_id = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{student.FullName, student.ContactPhone, student.MembershipPlanID, student.IsActive, student.ID, student.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&student.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStudent(id int64) error {
	query := `
		DELETE FROM students WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
