package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/config"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/repository"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/seed"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机会员计划, 3: 插入随机学员, 4: 生成随机每周分布, 5: 导入学员名单)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机员工", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入员工", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的会员计划数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				plan := utils.GenerateRandomMembershipPlan()
				if err := repo.CreateMembershipPlan(plan); err != nil {
					slog.Error("无法插入会员计划", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入会员计划成功", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的学员数量")
			return
		}

		// 先获取所有会员计划
		plans, err := repo.GetAllMembershipPlans()
		if err != nil {
			slog.Error("无法获取会员计划", slog.String("error", err.Error()))
			return
		}
		if len(plans) == 0 {
			slog.Error("数据库中没有会员计划，请先执行 -op 2")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			// 随机选一个计划
			plan := plans[rand.Intn(len(plans))]

			student := utils.GenerateRandomStudent(plan.ID)
			if err := repo.CreateStudent(student); err != nil {
				slog.Error("无法插入学员", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入学员成功", slog.Int("count", n-cnt))
	case 4:
		// 为所有启用中的学员随机生成排课记录，整体替换现有课表
		students, err := repo.GetActiveStudentsWithPlan()
		if err != nil {
			slog.Error("无法获取学员名单", slog.String("error", err.Error()))
			return
		}

		slots := make([]*domain.ScheduleSlot, 0)
		for _, student := range students {
			slots = append(slots, utils.GenerateRandomScheduleSlots(student, student.Plan.DaysPerWeek)...)
		}

		if err := repo.ReplaceScheduleSlots(slots); err != nil {
			slog.Error("无法写入排课记录", slog.String("error", err.Error()))
			return
		}

		slog.Info("生成随机每周分布成功", slog.Int("students", len(students)), slog.Int("slots", len(slots)))
	case 5:
		seed.SeedRoster(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
