package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/repository"
)

// SeedRoster 从 CSV 名单中导入学员
// 名单的表头为: 姓名, 电话, 每周天数
// 会按照每周天数自动创建或复用对应的会员计划
func SeedRoster(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/roster.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	columnIndex := make(map[string]int)
	for i, header := range headers {
		columnIndex[header] = i
	}

	for _, required := range []string{"姓名", "电话", "每周天数"} {
		if _, exists := columnIndex[required]; !exists {
			slog.Error("名单中缺少必要的列", "column", required)
			return
		}
	}

	// 已有的会员计划按每周天数索引，导入时优先复用
	plans, err := r.GetAllMembershipPlans()
	if err != nil {
		slog.Error("获取会员计划失败", "error", err)
		return
	}

	plansByDays := make(map[int32]*domain.MembershipPlan)
	for _, plan := range plans {
		if _, exists := plansByDays[plan.DaysPerWeek]; !exists {
			plansByDays[plan.DaysPerWeek] = plan
		}
	}

	cnt := 0
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		fullName := row[columnIndex["姓名"]]
		phone := row[columnIndex["电话"]]
		daysPerWeekStr := row[columnIndex["每周天数"]]

		daysPerWeek, err := strconv.ParseInt(daysPerWeekStr, 10, 32)
		if err != nil || daysPerWeek < 1 || daysPerWeek > 7 {
			slog.Error("每周天数不合法", "fullName", fullName, "daysPerWeek", daysPerWeekStr)
			continue
		}

		plan, exists := plansByDays[int32(daysPerWeek)]
		if !exists {
			plan = &domain.MembershipPlan{
				Name:              fmt.Sprintf("每周 %d 天计划", daysPerWeek),
				DaysPerWeek:       int32(daysPerWeek),
				MonthlyPriceCents: int64(daysPerWeek) * 20000,
			}
			if err := r.CreateMembershipPlan(plan); err != nil {
				slog.Error("创建会员计划失败", "error", err)
				continue
			}
			plansByDays[int32(daysPerWeek)] = plan
		}

		student := &domain.Student{
			FullName:         fullName,
			ContactPhone:     phone,
			MembershipPlanID: plan.ID,
		}

		if err := r.CreateStudent(student); err != nil {
			slog.Error("插入学员失败", "error", err, "fullName", fullName)
			continue
		}

		cnt++
	}

	slog.Info("导入学员名单成功", "count", cnt)
}
