package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/taskhive/backend/domain"
)

const defaultActivityExportLimit = 100

// ProductivityCSV renders the productivity report as CSV, one row per user.
func (uc *UseCase) ProductivityCSV(ctx context.Context) ([]byte, error) {
	rows, err := uc.Productivity(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Username", "FullName", "TasksAssigned", "TasksCompleted", "AverageCompletionTime", "TotalHoursLogged"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.User.Username,
			row.User.FullName,
			strconv.Itoa(row.TasksAssigned),
			strconv.Itoa(row.TasksCompleted),
			formatFloat(row.AverageCompletionTime),
			formatFloat(row.TotalHoursLogged),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ActivityCSV renders the newest audit entries as CSV. A non-positive limit
// falls back to 100.
func (uc *UseCase) ActivityCSV(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = defaultActivityExportLimit
	}
	views, err := uc.RecentActivity(ctx, limit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Timestamp", "User", "Action", "TaskTitle", "Description"}); err != nil {
		return nil, err
	}
	for _, view := range views {
		record := []string{
			view.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			view.User.Username,
			view.Action,
			view.TaskTitle,
			view.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DashboardCSV renders the dashboard snapshot as CSV, one titled section per
// grouping with a blank line between sections.
func (uc *UseCase) DashboardCSV(ctx context.Context) ([]byte, error) {
	dash, err := uc.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	sections := [][][]string{
		{
			{"Metric", "Value"},
			{"TotalTasks", strconv.Itoa(dash.TotalTasks)},
			{"CompletedTasks", strconv.Itoa(dash.CompletedTasks)},
			{"InProgressTasks", strconv.Itoa(dash.InProgressTasks)},
			{"PendingTasks", strconv.Itoa(dash.PendingTasks)},
			{"OverdueTasks", strconv.Itoa(dash.OverdueTasks)},
			{"HighPriorityTasks", strconv.Itoa(dash.HighPriorityTasks)},
			{"TotalProjects", strconv.Itoa(dash.TotalProjects)},
			{"ActiveProjects", strconv.Itoa(dash.ActiveProjects)},
		},
		statusSection(dash),
		prioritySection(dash),
		projectSection(dash),
	}
	for i, section := range sections {
		if i > 0 {
			if err := w.Write([]string{""}); err != nil {
				return nil, err
			}
		}
		for _, record := range section {
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func statusSection(dash *Dashboard) [][]string {
	section := [][]string{{"Status", "Count"}}
	for _, status := range domain.TaskStatuses() {
		section = append(section, []string{string(status), strconv.Itoa(dash.TasksByStatus[string(status)])})
	}
	return section
}

func prioritySection(dash *Dashboard) [][]string {
	section := [][]string{{"Priority", "Count"}}
	for _, priority := range domain.TaskPriorities() {
		section = append(section, []string{string(priority), strconv.Itoa(dash.TasksByPriority[string(priority)])})
	}
	return section
}

func projectSection(dash *Dashboard) [][]string {
	section := [][]string{{"Project", "TotalTasks", "CompletedTasks", "CompletionPercentage"}}
	for _, summary := range dash.ProjectSummary {
		section = append(section, []string{
			summary.ProjectName,
			strconv.Itoa(summary.TotalTasks),
			strconv.Itoa(summary.CompletedTasks),
			formatFloat(summary.CompletionPercentage),
		})
	}
	return section
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
