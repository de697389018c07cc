package planner

import (
	"strings"
	"time"
)

// Season 校验所需的赛季快照
type Season struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsCurrent bool
}

// Candidate 待创建的赛季
type Candidate struct {
	Name       string
	WeeksCount int
	StartDate  time.Time
	EndDate    time.Time
	IsCurrent  bool
}

// ConflictReport 创建前的冲突预检结果
type ConflictReport struct {
	NameConflict          bool `json:"nameConflict"`
	CurrentSeasonConflict bool `json:"currentSeasonConflict"`
	DateConflict          bool `json:"dateConflict"`
	CanCreate             bool `json:"canCreate"`
}

// ValidateNew 依次执行新赛季的全部校验，任一失败立即返回。
// 校验通过时返回切分好的周。today 为调用方时区下的日历日期。
//
// 顺序：日期区间 → 过去日期 → 重名（区分大小写）→ 日期重叠 → 当前赛季唯一 → 周切分。
func ValidateNew(c Candidate, existing []Season, today time.Time) ([]Week, error) {
	start, end, today := DateOf(c.StartDate), DateOf(c.EndDate), DateOf(today)

	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	if start.Before(today) || end.Before(today) {
		return nil, newError(KindDatesInPast, "日期不能早于 %s", today.Format("2006-01-02"))
	}

	for _, s := range existing {
		if s.Name == c.Name {
			return nil, newError(KindDuplicateName, "已存在名为 %q 的赛季", c.Name)
		}
	}

	for _, s := range existing {
		if Overlaps(start, end, s.StartDate, s.EndDate) {
			return nil, newError(KindDateOverlap, "赛季日期与 %q (%s ~ %s) 重叠",
				s.Name, DateOf(s.StartDate).Format("2006-01-02"), DateOf(s.EndDate).Format("2006-01-02"))
		}
	}

	if c.IsCurrent && hasCurrent(existing) {
		return nil, ErrCurrentSeasonConflict
	}

	return Partition(start, end, c.WeeksCount)
}

// CheckConflicts 只读地分别报告各项冲突，从不失败。
// CurrentSeasonConflict 表示"已存在当前赛季"，与候选是否申请当前无关；
// CanCreate 仅在候选申请成为当前赛季时才考虑该项。
func CheckConflicts(c Candidate, existing []Season) ConflictReport {
	var r ConflictReport
	start, end := DateOf(c.StartDate), DateOf(c.EndDate)

	for _, s := range existing {
		if strings.EqualFold(s.Name, c.Name) {
			r.NameConflict = true
		}
		if s.IsCurrent {
			r.CurrentSeasonConflict = true
		}
		if Overlaps(start, end, s.StartDate, s.EndDate) {
			r.DateConflict = true
		}
	}

	r.CanCreate = !r.NameConflict && !(c.IsCurrent && r.CurrentSeasonConflict) && !r.DateConflict
	return r
}

// NameAvailable 大小写不敏感地判断名称是否未被占用
func NameAvailable(name string, existing []Season) bool {
	for _, s := range existing {
		if strings.EqualFold(s.Name, name) {
			return false
		}
	}
	return true
}

// Overlaps 闭区间重叠判断，端点相接也算重叠
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !DateOf(aStart).After(DateOf(bEnd)) && !DateOf(aEnd).Before(DateOf(bStart))
}

func hasCurrent(existing []Season) bool {
	for _, s := range existing {
		if s.IsCurrent {
			return true
		}
	}
	return false
}
