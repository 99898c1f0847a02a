package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func (h *Handler) CreateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string `json:"name" validate:"required"`
		DaysPerWeek       int32  `json:"daysPerWeek" validate:"required,min=1,max=7"`
		MonthlyPriceCents int64  `json:"monthlyPriceCents" validate:"required,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	plan := &domain.MembershipPlan{
		Name:              req.Name,
		DaysPerWeek:       req.DaysPerWeek,
		MonthlyPriceCents: req.MonthlyPriceCents,
	}

	if err := h.repository.CreateMembershipPlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "membership_plans_name_key":
				h.errorResponse(w, r, "会员计划名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建会员计划成功", plan)
}

func (h *Handler) GetMembershipPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(MembershipPlanCtx).(*domain.MembershipPlan)
	h.successResponse(w, r, "获取会员计划成功", plan)
}

func (h *Handler) GetAllMembershipPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repository.GetAllMembershipPlans()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有会员计划成功", plans)
}

func (h *Handler) UpdateMembershipPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(MembershipPlanCtx).(*domain.MembershipPlan)

	var req struct {
		Name              *string `json:"name"`
		DaysPerWeek       *int32  `json:"daysPerWeek" validate:"omitempty,min=1,max=7"`
		MonthlyPriceCents *int64  `json:"monthlyPriceCents" validate:"omitempty,min=0"`
		IsActive          *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.DaysPerWeek != nil {
		plan.DaysPerWeek = *req.DaysPerWeek
	}
	if req.MonthlyPriceCents != nil {
		plan.MonthlyPriceCents = *req.MonthlyPriceCents
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateMembershipPlan(plan); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "membership_plans_name_key":
				h.errorResponse(w, r, "会员计划名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新会员计划失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新会员计划成功", plan)
}

func (h *Handler) DeleteMembershipPlan(w http.ResponseWriter, r *http.Request) {
	plan := r.Context().Value(MembershipPlanCtx).(*domain.MembershipPlan)

	if err := h.repository.DeleteMembershipPlan(plan.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "students_membership_plan_id_fkey":
				h.errorResponse(w, r, "还有学员在使用该会员计划，不能删除")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除会员计划成功", nil)
}
