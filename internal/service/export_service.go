package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"nfl-fantasy/backend/internal/model"
	"nfl-fantasy/backend/internal/planner"
	"nfl-fantasy/backend/internal/repository"
	apperrors "nfl-fantasy/backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoWeeks      = errors.New("该赛季没有周次数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSeasonXLSX 导出赛季周历为 Excel：每周一行
	ExportSeasonXLSX(ctx context.Context, seasonID string) (*bytes.Buffer, string, error)
	// ExportSeasonICS 导出赛季周历为 iCalendar：每周一个全天事件
	ExportSeasonICS(ctx context.Context, seasonID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSeasonXLSX
// ═══════════════════════════════════════════════════════════
//
// | 周次 | 开始日期 | 结束日期 | 天数 |

func (s *exportService) ExportSeasonXLSX(ctx context.Context, seasonID string) (*bytes.Buffer, string, error) {
	season, weeks, err := s.loadSeason(ctx, seasonID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Weeks"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 8)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#013369"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", season.Name)
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle)

	// 表头
	for i, h := range []string{"Week", "Start", "End", "Days"} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 2), h)
	}
	f.SetCellStyle(sheetName, "A2", "D2", headerStyle)

	// 数据行
	for i, w := range weeks {
		row := i + 3
		f.SetCellValue(sheetName, cell("A", row), w.Number)
		f.SetCellValue(sheetName, cell("B", row), w.StartDate.Format(dateLayout))
		f.SetCellValue(sheetName, cell("C", row), w.EndDate.Format(dateLayout))
		f.SetCellValue(sheetName, cell("D", row), w.Days())
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("%s.xlsx", season.Name), nil
}

// ═══════════════════════════════════════════════════════════
// ExportSeasonICS
// ═══════════════════════════════════════════════════════════
//
// 全天事件的 DTEND 为开区间，因此取周结束日的次日

func (s *exportService) ExportSeasonICS(ctx context.Context, seasonID string) (*bytes.Buffer, string, error) {
	season, weeks, err := s.loadSeason(ctx, seasonID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//nfl-fantasy//season calendar//EN")
	cal.SetXWRCalName(season.Name)

	stamp := time.Now().UTC()
	for _, w := range weeks {
		evt := cal.AddEvent(fmt.Sprintf("%s-week-%d@nfl-fantasy", season.SeasonID, w.Number))
		evt.SetDtStampTime(stamp)
		evt.SetSummary(fmt.Sprintf("%s · Week %d", season.Name, w.Number))
		evt.SetAllDayStartAt(w.StartDate)
		evt.SetAllDayEndAt(w.EndDate.AddDate(0, 0, 1))
	}

	return bytes.NewBufferString(cal.Serialize()), fmt.Sprintf("%s.ics", season.Name), nil
}

// ── 内部辅助方法 ──

func (s *exportService) loadSeason(ctx context.Context, seasonID string) (*model.Season, []planner.Week, error) {
	season, err := s.repo.Season.GetByID(ctx, seasonID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, ErrSeasonNotFound
		}
		s.logger.Error("查询赛季失败", zap.String("id", seasonID), zap.Error(err))
		return nil, nil, err
	}

	weeks := toPlannerWeeks(season.Weeks)
	if len(weeks) == 0 {
		return nil, nil, ErrExportNoWeeks
	}
	return season, weeks, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
