package repository

import (
	"context"
	"time"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func (r *Repository) GetAllScheduleSlots() ([]*domain.ScheduleSlot, error) {
	query := `
		SELECT id, student_id, day_of_week, is_locked, created_at
		FROM schedule_slots
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.ScheduleSlot, 0)
	for rows.Next() {
		slot := &domain.ScheduleSlot{}
		dst := []any{&slot.ID, &slot.StudentID, &slot.DayOfWeek, &slot.IsLocked, &slot.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *Repository) GetScheduleSlotsByStudentID(studentID int64) ([]*domain.ScheduleSlot, error) {
	query := `
		SELECT id, student_id, day_of_week, is_locked, created_at
		FROM schedule_slots
		WHERE student_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.ScheduleSlot, 0)
	for rows.Next() {
		slot := &domain.ScheduleSlot{}
		dst := []any{&slot.ID, &slot.StudentID, &slot.DayOfWeek, &slot.IsLocked, &slot.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// ReplaceScheduleSlots 用提交的排课记录整体替换当前的排课表
// 整个替换在一个事务中完成，失败时保持原有数据不变
func (r *Repository) ReplaceScheduleSlots(slots []*domain.ScheduleSlot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedule_slots`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return err
	}

	for _, slot := range slots {
		query := `
			INSERT INTO schedule_slots (student_id, day_of_week, is_locked)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, slot.StudentID, slot.DayOfWeek, slot.IsLocked).Scan(&slot.ID, &slot.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// ReallocateUnlockedScheduleSlots 删除所有未锁定的排课记录并插入新生成的记录
// 注意删除的范围是全表的未锁定记录，而不只是本次重新分配的学员
func (r *Repository) ReallocateUnlockedScheduleSlots(slots []*domain.ScheduleSlot) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM schedule_slots WHERE is_locked = FALSE`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return err
	}

	for _, slot := range slots {
		query := `
			INSERT INTO schedule_slots (student_id, day_of_week, is_locked)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		if err := tx.QueryRowContext(ctx, query, slot.StudentID, slot.DayOfWeek, slot.IsLocked).Scan(&slot.ID, &slot.CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
