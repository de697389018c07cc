package planner

import "fmt"

// Kind 赛季校验失败的类别
type Kind int

const (
	KindInvalidWeekCount Kind = iota + 1
	KindInvalidDateRange
	KindDatesInPast
	KindDuplicateName
	KindDateOverlap
	KindCurrentSeasonConflict
	KindWeekOverlap
)

var kindNames = map[Kind]string{
	KindInvalidWeekCount:      "InvalidWeekCount",
	KindInvalidDateRange:      "InvalidDateRange",
	KindDatesInPast:           "DatesInPast",
	KindDuplicateName:         "DuplicateName",
	KindDateOverlap:           "DateOverlap",
	KindCurrentSeasonConflict: "CurrentSeasonConflict",
	KindWeekOverlap:           "WeekOverlap",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ValidationError 带类别与可读原因的校验结果。
// errors.Is 只比较 Kind，因此可以直接与下方哨兵错误比较。
type ValidationError struct {
	Kind   Kind
	Reason string

	// 仅 KindWeekOverlap 使用：冲突的两个周次
	PrevWeek int
	NextWeek int
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is 按类别匹配
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ── 哨兵错误（用于 errors.Is） ──

var (
	ErrInvalidWeekCount      = &ValidationError{Kind: KindInvalidWeekCount, Reason: "周数无效"}
	ErrInvalidDateRange      = &ValidationError{Kind: KindInvalidDateRange, Reason: "结束日期必须晚于开始日期"}
	ErrDatesInPast           = &ValidationError{Kind: KindDatesInPast, Reason: "日期不能早于今天"}
	ErrDuplicateName         = &ValidationError{Kind: KindDuplicateName, Reason: "已存在同名赛季"}
	ErrDateOverlap           = &ValidationError{Kind: KindDateOverlap, Reason: "赛季日期与已有赛季重叠"}
	ErrCurrentSeasonConflict = &ValidationError{Kind: KindCurrentSeasonConflict, Reason: "已存在当前赛季"}
	ErrWeekOverlap           = &ValidationError{Kind: KindWeekOverlap, Reason: "生成的周次存在重叠"}
)

func newError(kind Kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func weekOverlapError(prev, next int) *ValidationError {
	return &ValidationError{
		Kind:     KindWeekOverlap,
		Reason:   fmt.Sprintf("第 %d 周与第 %d 周日期重叠", prev, next),
		PrevWeek: prev,
		NextWeek: next,
	}
}
