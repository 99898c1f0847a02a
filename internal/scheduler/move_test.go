package scheduler

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

func newTestDistribution() *domain.Distribution {
	return &domain.Distribution{
		DaySchedule: map[domain.Weekday][]domain.DayEntry{
			domain.Monday: {
				{StudentID: 1, FullName: "王小明", DaysPerWeek: 3},
				{StudentID: 2, FullName: "李思", DaysPerWeek: 2},
			},
			domain.Tuesday: {
				{StudentID: 1, FullName: "王小明", DaysPerWeek: 3, IsLocked: true},
			},
			domain.Wednesday: {},
			domain.Thursday:  {},
			domain.Friday:    {},
		},
		UnallocatedStudents: []domain.UnallocatedEntry{
			{Key: "1#2", StudentID: 1, FullName: "王小明", DaysPerWeek: 3},
			{Key: "2#1", StudentID: 2, FullName: "李思", DaysPerWeek: 2},
		},
	}
}

func cloneDistribution(dist *domain.Distribution) *domain.Distribution {
	clone := &domain.Distribution{
		DaySchedule:         make(map[domain.Weekday][]domain.DayEntry, len(dist.DaySchedule)),
		UnallocatedStudents: slices.Clone(dist.UnallocatedStudents),
	}
	for day, entries := range dist.DaySchedule {
		clone.DaySchedule[day] = slices.Clone(entries)
	}
	return clone
}

func TestApplyMoveUnallocatedToDay(t *testing.T) {
	dist := newTestDistribution()

	err := ApplyMove(dist,
		BucketRef{Bucket: "unallocated", Index: 0},
		BucketRef{Bucket: "day:WEDNESDAY", Index: 0},
	)
	require.NoError(t, err)

	require.Len(t, dist.UnallocatedStudents, 1)
	require.Equal(t, int64(2), dist.UnallocatedStudents[0].StudentID)
	require.Len(t, dist.DaySchedule[domain.Wednesday], 1)
	require.Equal(t, int64(1), dist.DaySchedule[domain.Wednesday][0].StudentID)
}

func TestApplyMoveRejectsDuplicateDay(t *testing.T) {
	dist := newTestDistribution()
	before := cloneDistribution(dist)

	// 学员 1 在周一已有排课，从未分配区拖入周一必须被拒绝
	err := ApplyMove(dist,
		BucketRef{Bucket: "unallocated", Index: 0},
		BucketRef{Bucket: "day:MONDAY", Index: 0},
	)

	var dupErr *DuplicateDayError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "王小明", dupErr.FullName)
	require.Equal(t, domain.Monday, dupErr.Day)
	require.Equal(t, before, dist, "被拒绝的拖拽不能修改分布")
}

func TestApplyMoveDayToDay(t *testing.T) {
	dist := newTestDistribution()

	err := ApplyMove(dist,
		BucketRef{Bucket: "day:MONDAY", Index: 1},
		BucketRef{Bucket: "day:FRIDAY", Index: 0},
	)
	require.NoError(t, err)

	require.Len(t, dist.DaySchedule[domain.Monday], 1)
	require.Equal(t, int64(1), dist.DaySchedule[domain.Monday][0].StudentID)
	require.Len(t, dist.DaySchedule[domain.Friday], 1)
	require.Equal(t, int64(2), dist.DaySchedule[domain.Friday][0].StudentID)
}

func TestApplyMoveDayToDayRejectsDuplicate(t *testing.T) {
	dist := newTestDistribution()
	before := cloneDistribution(dist)

	// 学员 1 在周二已有锁定的排课，从周一拖入周二必须被拒绝
	err := ApplyMove(dist,
		BucketRef{Bucket: "day:MONDAY", Index: 0},
		BucketRef{Bucket: "day:TUESDAY", Index: 0},
	)

	var dupErr *DuplicateDayError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, before, dist)
}

func TestApplyMoveDayToUnallocated(t *testing.T) {
	dist := newTestDistribution()

	err := ApplyMove(dist,
		BucketRef{Bucket: "day:TUESDAY", Index: 0},
		BucketRef{Bucket: "unallocated", Index: 0},
	)
	require.NoError(t, err)

	require.Empty(t, dist.DaySchedule[domain.Tuesday])
	require.Len(t, dist.UnallocatedStudents, 3)

	moved := dist.UnallocatedStudents[2]
	require.Equal(t, int64(1), moved.StudentID)
	require.Equal(t, "1#3", moved.Key)
}

func TestApplyMoveKeepsUnallocatedKeysUnique(t *testing.T) {
	// 学员每周 3 天，已排周一和周二，读出来带一个 "1#2" 的未分配名额
	students := []*domain.Student{newTestStudent(1, "王小明", 3)}
	slots := []*domain.ScheduleSlot{
		{ID: 1, StudentID: 1, DayOfWeek: domain.Monday},
		{ID: 2, StudentID: 1, DayOfWeek: domain.Tuesday},
	}

	dist, err := BuildDistribution(students, slots)
	require.NoError(t, err)

	// 把两天的排课依次拖回未分配区，生成的键不能和已有的键重复
	err = ApplyMove(dist,
		BucketRef{Bucket: "day:MONDAY", Index: 0},
		BucketRef{Bucket: "unallocated", Index: 0},
	)
	require.NoError(t, err)

	err = ApplyMove(dist,
		BucketRef{Bucket: "day:TUESDAY", Index: 0},
		BucketRef{Bucket: "unallocated", Index: 0},
	)
	require.NoError(t, err)

	require.Len(t, dist.UnallocatedStudents, 3)

	seen := make(map[string]bool)
	for _, entry := range dist.UnallocatedStudents {
		require.False(t, seen[entry.Key], "重复的未分配键 %s", entry.Key)
		seen[entry.Key] = true
	}
}

func TestApplyMoveReorderWithinDay(t *testing.T) {
	dist := newTestDistribution()

	err := ApplyMove(dist,
		BucketRef{Bucket: "day:MONDAY", Index: 0},
		BucketRef{Bucket: "day:MONDAY", Index: 1},
	)
	require.NoError(t, err)

	require.Equal(t, int64(2), dist.DaySchedule[domain.Monday][0].StudentID)
	require.Equal(t, int64(1), dist.DaySchedule[domain.Monday][1].StudentID)
}

func TestApplyMoveReorderWithinUnallocated(t *testing.T) {
	dist := newTestDistribution()

	err := ApplyMove(dist,
		BucketRef{Bucket: "unallocated", Index: 1},
		BucketRef{Bucket: "unallocated", Index: 0},
	)
	require.NoError(t, err)

	require.Equal(t, int64(2), dist.UnallocatedStudents[0].StudentID)
	require.Equal(t, int64(1), dist.UnallocatedStudents[1].StudentID)
}

func TestApplyMoveRejectsInvalidBucket(t *testing.T) {
	testCases := []struct {
		name string
		src  BucketRef
		dst  BucketRef
	}{
		{
			name: "未知的桶",
			src:  BucketRef{Bucket: "foo", Index: 0},
			dst:  BucketRef{Bucket: "unallocated", Index: 0},
		},
		{
			name: "不在周一到周五内的星期",
			src:  BucketRef{Bucket: "unallocated", Index: 0},
			dst:  BucketRef{Bucket: "day:SUNDAY", Index: 0},
		},
		{
			name: "负数下标",
			src:  BucketRef{Bucket: "unallocated", Index: -1},
			dst:  BucketRef{Bucket: "day:MONDAY", Index: 0},
		},
		{
			name: "下标超出范围",
			src:  BucketRef{Bucket: "day:MONDAY", Index: 5},
			dst:  BucketRef{Bucket: "unallocated", Index: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dist := newTestDistribution()
			before := cloneDistribution(dist)

			err := ApplyMove(dist, tc.src, tc.dst)
			require.Error(t, err)
			require.Equal(t, before, dist)
		})
	}
}
