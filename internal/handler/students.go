package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName         string `json:"fullName" validate:"required"`
		ContactPhone     string `json:"contactPhone" validate:"required"`
		MembershipPlanID int64  `json:"membershipPlanID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	student := &domain.Student{
		FullName:         req.FullName,
		ContactPhone:     req.ContactPhone,
		MembershipPlanID: req.MembershipPlanID,
	}

	if err := h.repository.CreateStudent(student); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "students_membership_plan_id_fkey":
				h.errorResponse(w, r, "会员计划不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建学员成功", student)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student := r.Context().Value(StudentCtx).(*domain.Student)
	h.successResponse(w, r, "获取学员信息成功", student)
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.repository.GetAllStudents()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取学员列表成功", students)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	student := r.Context().Value(StudentCtx).(*domain.Student)

	var req struct {
		FullName         *string `json:"fullName"`
		ContactPhone     *string `json:"contactPhone"`
		MembershipPlanID *int64  `json:"membershipPlanID"`
		IsActive         *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.ContactPhone != nil {
		student.ContactPhone = *req.ContactPhone
	}
	if req.MembershipPlanID != nil {
		student.MembershipPlanID = *req.MembershipPlanID
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStudent(student); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "students_membership_plan_id_fkey":
				h.errorResponse(w, r, "会员计划不存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新学员信息失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新学员信息成功", student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	student := r.Context().Value(StudentCtx).(*domain.Student)

	if err := h.repository.DeleteStudent(student.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除学员成功", nil)
}

func (h *Handler) GetStudentScheduleSlots(w http.ResponseWriter, r *http.Request) {
	student := r.Context().Value(StudentCtx).(*domain.Student)

	slots, err := h.repository.GetScheduleSlotsByStudentID(student.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取学员排课记录成功", slots)
}
