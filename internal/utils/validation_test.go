package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func TestValidateDistribution(t *testing.T) {
	students := []*domain.Student{
		{ID: 1, FullName: "王小明"},
		{ID: 2, FullName: "李思"},
	}

	testCases := []struct {
		name        string
		daySchedule map[domain.Weekday][]domain.DayEntry
		wantErr     bool
	}{
		{
			name: "合法的分布",
			daySchedule: map[domain.Weekday][]domain.DayEntry{
				domain.Monday: {
					{StudentID: 1, FullName: "王小明"},
					{StudentID: 2, FullName: "李思"},
				},
				domain.Tuesday: {
					{StudentID: 1, FullName: "王小明"},
				},
			},
			wantErr: false,
		},
		{
			name: "不合法的星期",
			daySchedule: map[domain.Weekday][]domain.DayEntry{
				domain.Weekday("SUNDAY"): {
					{StudentID: 1, FullName: "王小明"},
				},
			},
			wantErr: true,
		},
		{
			name: "不在名单中的学员",
			daySchedule: map[domain.Weekday][]domain.DayEntry{
				domain.Monday: {
					{StudentID: 99, FullName: "赵六"},
				},
			},
			wantErr: true,
		},
		{
			name: "同一天出现两次的学员",
			daySchedule: map[domain.Weekday][]domain.DayEntry{
				domain.Monday: {
					{StudentID: 1, FullName: "王小明"},
					{StudentID: 1, FullName: "王小明"},
				},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDistribution(tc.daySchedule, students)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
