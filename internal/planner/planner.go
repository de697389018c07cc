// Package planner 将赛季日期区间切分为连续的周，并对新赛季做冲突校验。
//
// 本包不做任何 I/O：调用方负责提供已有赛季快照与"今天"的日期，
// 并在持久化层保证快照读取与写入之间的隔离。
package planner

import "time"

const (
	MinWeeks = 1
	MaxWeeks = 30
)

// Week 赛季中的一周（闭区间，按日历日计）
type Week struct {
	Number    int // 从 1 开始
	StartDate time.Time
	EndDate   time.Time
}

// Days 返回该周包含的天数
func (w Week) Days() int {
	return DaysBetween(w.StartDate, w.EndDate) + 1
}

// Contains 判断日期是否落在该周内
func (w Week) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}

// DateOf 取 t 在其自身时区下的年月日，归一化为 UTC 零点
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween 返回 to - from 的日历天数
// 不经过 time.Duration：Sub 的结果在约 292 年处饱和，跨度更长的区间会算错
func DaysBetween(from, to time.Time) int {
	return int((DateOf(to).Unix() - DateOf(from).Unix()) / secondsPerDay)
}

// Partition 将 [start, end] 切分为 weeksCount 个首尾相接的周。
//
// 余数天数分配给最靠前的周：前 totalDays%weeksCount 周各多一天。
// 该分配规则决定了已有数据的周边界，不可更改。
func Partition(start, end time.Time, weeksCount int) ([]Week, error) {
	start, end = DateOf(start), DateOf(end)

	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	if weeksCount < MinWeeks || weeksCount > MaxWeeks {
		return nil, newError(KindInvalidWeekCount, "周数必须在 %d-%d 之间", MinWeeks, MaxWeeks)
	}

	totalDays := DaysBetween(start, end) + 1
	if weeksCount > totalDays {
		return nil, newError(KindInvalidWeekCount, "周数 %d 超过赛季总天数 %d", weeksCount, totalDays)
	}

	daysPerWeek := totalDays / weeksCount
	extraDays := totalDays % weeksCount

	weeks := make([]Week, 0, weeksCount)
	weekStart := start
	for i := 1; i <= weeksCount; i++ {
		length := daysPerWeek
		if i <= extraDays {
			length++
		}
		weekEnd := weekStart.AddDate(0, 0, length-1)
		if weekEnd.After(end) {
			weekEnd = end
		}
		weeks = append(weeks, Week{Number: i, StartDate: weekStart, EndDate: weekEnd})
		weekStart = weekEnd.AddDate(0, 0, 1)
	}

	if err := checkContiguous(weeks); err != nil {
		return nil, err
	}
	if last := weeks[len(weeks)-1]; !last.EndDate.Equal(end) {
		return nil, newError(KindInvalidDateRange, "最后一周结束于 %s，未覆盖到赛季结束日 %s",
			last.EndDate.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return weeks, nil
}

// checkContiguous 每周的开始必须严格晚于上一周的结束
func checkContiguous(weeks []Week) error {
	for i := 1; i < len(weeks); i++ {
		if !weeks[i].StartDate.After(weeks[i-1].EndDate) {
			return weekOverlapError(weeks[i-1].Number, weeks[i].Number)
		}
	}
	return nil
}

// WeekAt 返回包含 date 的周，不存在时 ok=false
func WeekAt(weeks []Week, date time.Time) (Week, bool) {
	for _, w := range weeks {
		if w.Contains(date) {
			return w, true
		}
	}
	return Week{}, false
}
