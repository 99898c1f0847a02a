package scheduler

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
)

const (
	BucketUnallocated = "unallocated"
	bucketDayPrefix   = "day:"
)

// BucketRef 标识一次拖拽的来源或目标位置
// Bucket 的格式为 "unallocated" 或者 "day:MONDAY"
type BucketRef struct {
	Bucket string `json:"bucket" validate:"required"`
	Index  int    `json:"index" validate:"min=0"`
}

var weekdayLabels = map[domain.Weekday]string{
	domain.Monday:    "周一",
	domain.Tuesday:   "周二",
	domain.Wednesday: "周三",
	domain.Thursday:  "周四",
	domain.Friday:    "周五",
}

// DuplicateDayError 表示把学员拖入了他已经有排课的那一天
type DuplicateDayError struct {
	FullName string
	Day      domain.Weekday
}

func (e *DuplicateDayError) Error() string {
	return fmt.Sprintf("学员 %s 在%s已有排课，不能重复分配", e.FullName, weekdayLabels[e.Day])
}

// ParseBucketRef 解析 BucketRef，不合法时返回错误
// 返回的 weekday 只有在 isDay 为 true 时才有意义
func ParseBucketRef(ref BucketRef) (isDay bool, day domain.Weekday, err error) {
	if ref.Index < 0 {
		return false, "", fmt.Errorf("无效的位置下标 %d", ref.Index)
	}

	if ref.Bucket == BucketUnallocated {
		return false, "", nil
	}

	if strings.HasPrefix(ref.Bucket, bucketDayPrefix) {
		day := domain.Weekday(strings.TrimPrefix(ref.Bucket, bucketDayPrefix))
		if !domain.IsValidWeekday(day) {
			return false, "", fmt.Errorf("无效的星期 %s", day)
		}
		return true, day, nil
	}

	return false, "", fmt.Errorf("无效的拖拽位置 %s", ref.Bucket)
}

func isStudentInDay(dist *domain.Distribution, studentID int64, day domain.Weekday) bool {
	return slices.ContainsFunc(dist.DaySchedule[day], func(entry domain.DayEntry) bool {
		return entry.StudentID == studentID
	})
}

// nextUnallocatedOrdinal 返回学员下一个未分配名额的序号
// 必须取现有名额中最大的序号加一，用数量做序号会跟已有的键撞上
func nextUnallocatedOrdinal(dist *domain.Distribution, studentID int64) int {
	prefix := fmt.Sprintf("%d#", studentID)
	next := 0
	for _, entry := range dist.UnallocatedStudents {
		if entry.StudentID != studentID {
			continue
		}
		ordinal, err := strconv.Atoi(strings.TrimPrefix(entry.Key, prefix))
		if err != nil {
			continue
		}
		if ordinal+1 > next {
			next = ordinal + 1
		}
	}
	return next
}

// ApplyMove 把一次拖拽应用到分布上
// 所有校验都在修改之前完成，返回错误时分布保持原样
func ApplyMove(dist *domain.Distribution, src BucketRef, dst BucketRef) error {
	srcIsDay, srcDay, err := ParseBucketRef(src)
	if err != nil {
		return err
	}
	dstIsDay, dstDay, err := ParseBucketRef(dst)
	if err != nil {
		return err
	}

	// 同一个桶内的移动是纯重排
	if srcIsDay == dstIsDay && (!srcIsDay || srcDay == dstDay) {
		if srcIsDay {
			list := dist.DaySchedule[srcDay]
			if src.Index >= len(list) || dst.Index >= len(list) {
				return fmt.Errorf("位置下标超出范围")
			}
			entry := list[src.Index]
			list = slices.Delete(list, src.Index, src.Index+1)
			list = slices.Insert(list, dst.Index, entry)
			dist.DaySchedule[srcDay] = list
			return nil
		}

		if src.Index >= len(dist.UnallocatedStudents) || dst.Index >= len(dist.UnallocatedStudents) {
			return fmt.Errorf("位置下标超出范围")
		}
		entry := dist.UnallocatedStudents[src.Index]
		dist.UnallocatedStudents = slices.Delete(dist.UnallocatedStudents, src.Index, src.Index+1)
		dist.UnallocatedStudents = slices.Insert(dist.UnallocatedStudents, dst.Index, entry)
		return nil
	}

	switch {
	case !srcIsDay && dstIsDay:
		// 未分配 → 某天
		if src.Index >= len(dist.UnallocatedStudents) {
			return fmt.Errorf("位置下标超出范围")
		}
		entry := dist.UnallocatedStudents[src.Index]
		if isStudentInDay(dist, entry.StudentID, dstDay) {
			return &DuplicateDayError{FullName: entry.FullName, Day: dstDay}
		}

		dist.UnallocatedStudents = slices.Delete(dist.UnallocatedStudents, src.Index, src.Index+1)
		dist.DaySchedule[dstDay] = append(dist.DaySchedule[dstDay], domain.DayEntry{
			StudentID:   entry.StudentID,
			FullName:    entry.FullName,
			DaysPerWeek: entry.DaysPerWeek,
		})
		return nil

	case srcIsDay && !dstIsDay:
		// 某天 → 未分配，总是允许
		if src.Index >= len(dist.DaySchedule[srcDay]) {
			return fmt.Errorf("位置下标超出范围")
		}
		entry := dist.DaySchedule[srcDay][src.Index]

		dist.DaySchedule[srcDay] = slices.Delete(dist.DaySchedule[srcDay], src.Index, src.Index+1)
		dist.UnallocatedStudents = append(dist.UnallocatedStudents, domain.UnallocatedEntry{
			Key:         UnallocatedKey(entry.StudentID, nextUnallocatedOrdinal(dist, entry.StudentID)),
			StudentID:   entry.StudentID,
			FullName:    entry.FullName,
			DaysPerWeek: entry.DaysPerWeek,
		})
		return nil

	default:
		// 某天 → 另一天
		if src.Index >= len(dist.DaySchedule[srcDay]) {
			return fmt.Errorf("位置下标超出范围")
		}
		entry := dist.DaySchedule[srcDay][src.Index]
		if isStudentInDay(dist, entry.StudentID, dstDay) {
			return &DuplicateDayError{FullName: entry.FullName, Day: dstDay}
		}

		dist.DaySchedule[srcDay] = slices.Delete(dist.DaySchedule[srcDay], src.Index, src.Index+1)
		dist.DaySchedule[dstDay] = append(dist.DaySchedule[dstDay], entry)
		return nil
	}
}
