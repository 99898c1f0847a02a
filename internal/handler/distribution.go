package handler

import (
	"errors"
	"net/http"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/utils"
)

func (h *Handler) loadDistribution() (*domain.Distribution, error) {
	students, err := h.repository.GetActiveStudentsWithPlan()
	if err != nil {
		return nil, err
	}

	slots, err := h.repository.GetAllScheduleSlots()
	if err != nil {
		return nil, err
	}

	return scheduler.BuildDistribution(students, slots)
}

func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.loadDistribution()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取每周分布成功", dist)
}

func (h *Handler) SaveDistribution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DaySchedule         map[domain.Weekday][]domain.DayEntry `json:"daySchedule" validate:"required"`
		UnallocatedStudents []domain.UnallocatedEntry            `json:"unallocatedStudents"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	students, err := h.repository.GetActiveStudentsWithPlan()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := utils.ValidateDistribution(req.DaySchedule, students); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 未分配名额不落库，只保存每天的排课记录
	slots := make([]*domain.ScheduleSlot, 0)
	for _, day := range domain.Weekdays() {
		for _, entry := range req.DaySchedule[day] {
			slots = append(slots, &domain.ScheduleSlot{
				StudentID: entry.StudentID,
				DayOfWeek: day,
				IsLocked:  entry.IsLocked,
			})
		}
	}

	if err := h.repository.ReplaceScheduleSlots(slots); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存每周分布成功", nil)
}

func (h *Handler) AutoAllocateDistribution(w http.ResponseWriter, r *http.Request) {
	students, err := h.repository.GetActiveStudentsWithPlan()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	slots, err := h.repository.GetAllScheduleSlots()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	targets := scheduler.SelectAutoAllocationTargets(students, slots)
	newSlots := scheduler.BuildAutoAllocation(targets)

	if err := h.repository.ReallocateUnlockedScheduleSlots(newSlots); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 返回重新分配之后的分布，方便前端直接刷新页面
	dist, err := h.loadDistribution()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "自动分配成功", dist)
}

func (h *Handler) MoveDistributionEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DaySchedule         map[domain.Weekday][]domain.DayEntry `json:"daySchedule" validate:"required"`
		UnallocatedStudents []domain.UnallocatedEntry            `json:"unallocatedStudents"`
		Source              scheduler.BucketRef                  `json:"source" validate:"required"`
		Destination         scheduler.BucketRef                  `json:"destination" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateDistributionDays(req.DaySchedule); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dist := &domain.Distribution{
		DaySchedule:         req.DaySchedule,
		UnallocatedStudents: req.UnallocatedStudents,
	}
	if dist.DaySchedule == nil {
		dist.DaySchedule = make(map[domain.Weekday][]domain.DayEntry)
	}
	if dist.UnallocatedStudents == nil {
		dist.UnallocatedStudents = make([]domain.UnallocatedEntry, 0)
	}

	if err := scheduler.ApplyMove(dist, req.Source, req.Destination); err != nil {
		var dupErr *scheduler.DuplicateDayError
		switch {
		case errors.As(err, &dupErr):
			// 重复分配只是一个业务上的警告，分布保持原样返回
			h.errorResponse(w, r, dupErr.Error())
		default:
			h.badRequest(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "移动成功", struct {
		DaySchedule         map[domain.Weekday][]domain.DayEntry `json:"daySchedule"`
		UnallocatedStudents []domain.UnallocatedEntry            `json:"unallocatedStudents"`
	}{
		DaySchedule:         dist.DaySchedule,
		UnallocatedStudents: dist.UnallocatedStudents,
	})
}
