package domain

import "time"

type MembershipPlan struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	DaysPerWeek       int32     `json:"daysPerWeek"`
	MonthlyPriceCents int64     `json:"monthlyPriceCents"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}
