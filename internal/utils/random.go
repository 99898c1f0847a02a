package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/tutoring-center/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleReception,
	domain.RoleDean,
	domain.RoleAdmin,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomPhone() string {
	phone := "1" + string(digits[rand.Intn(9)+1])
	for i := 0; i < 9; i++ {
		phone += string(digits[rand.Intn(len(digits))])
	}
	return phone
}

// GenerateRandomMembershipPlan 生成一个随机的会员计划，每周 1~7 天
func GenerateRandomMembershipPlan() *domain.MembershipPlan {
	daysPerWeek := int32(rand.Intn(7) + 1)

	return &domain.MembershipPlan{
		Name:              fmt.Sprintf("每周 %d 天计划 %s", daysPerWeek, GenerateRandomID(2, 3)),
		DaysPerWeek:       daysPerWeek,
		MonthlyPriceCents: int64(daysPerWeek) * int64(rand.Intn(20000)+10000),
	}
}

func GenerateRandomStudent(planID int64) *domain.Student {
	return &domain.Student{
		FullName:         GenerateRandomChineseName(),
		ContactPhone:     GenerateRandomPhone(),
		MembershipPlanID: planID,
	}
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// GenerateRandomScheduleSlots 用 Fisher-Yates 洗牌算法为学员随机生成若干条排课记录
// 有一定概率锁定其中的记录，方便调试锁定相关的逻辑
func GenerateRandomScheduleSlots(student *domain.Student, daysPerWeek int32) []*domain.ScheduleSlot {
	weekdays := domain.Weekdays()

	for i := len(weekdays) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		weekdays[i], weekdays[j] = weekdays[j], weekdays[i]
	}

	n := rand.Intn(int(daysPerWeek) + 1)
	if n > len(weekdays) {
		n = len(weekdays)
	}

	slots := make([]*domain.ScheduleSlot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, &domain.ScheduleSlot{
			StudentID: student.ID,
			DayOfWeek: weekdays[i],
			IsLocked:  rand.Intn(10) == 0,
		})
	}

	return slots
}
