package domain

import "time"

type Student struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"fullName"`
	ContactPhone     string    `json:"contactPhone"`
	MembershipPlanID int64     `json:"membershipPlanID"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`

	// Plan 只在查询时通过 JOIN 填充，更新学员时不使用
	Plan *MembershipPlan `json:"plan,omitempty"`
}
