package timetable

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Row is the flat spreadsheet form of an Assignment
type Row struct {
	Section   string `csv:"section"`
	Subject   string `csv:"subject_code"`
	Name      string `csv:"subject_name"`
	Kind      string `csv:"kind"`
	Teacher   string `csv:"teacher"`
	Room      string `csv:"room"`
	Day       int    `csv:"day"`
	DayName   string `csv:"day_name"`
	Period    int    `csv:"period"`
	Duration  int    `csv:"duration"`
	StartTime string `csv:"start_time"`
	EndTime   string `csv:"end_time"`
	Status    string `csv:"status"`
}

func toRow(assignment Assignment, status string) Row {
	return Row{
		Section:   assignment.Section,
		Subject:   assignment.Subject,
		Name:      assignment.SubjectName,
		Kind:      string(assignment.Kind),
		Teacher:   assignment.Teacher,
		Room:      assignment.Room,
		Day:       assignment.Slot.Day,
		DayName:   assignment.DayName,
		Period:    assignment.Slot.Period,
		Duration:  lo.Ternary(assignment.Partner != nil, 2, 1),
		StartTime: assignment.StartTime,
		EndTime:   assignment.EndTime,
		Status:    status,
	}
}

// Rows flattens the result; unresolved sessions are included with an "unresolved" status
func Rows(result *Result) []*Row {
	rows := make([]*Row, 0, len(result.assignments)+len(result.unresolved))
	for _, assignment := range result.assignments {
		row := toRow(assignment, "scheduled")
		rows = append(rows, &row)
	}
	for _, assignment := range result.unresolved {
		row := toRow(assignment, "unresolved")
		rows = append(rows, &row)
	}
	return rows
}

func WriteCSV(writer io.Writer, result *Result) error {
	if err := gocsv.Marshal(Rows(result), writer); err != nil {
		return errors.Wrap(err, "cannot write timetable csv")
	}
	return nil
}

// WriteJSON writes the per-section view of the result along with its summary
func WriteJSON(writer io.Writer, result *Result) error {
	perSection := lo.GroupBy(result.assignments, func(assignment Assignment) string {
		return assignment.Section
	})

	document := struct {
		Summary
		Sections   map[string][]Assignment `json:"sections"`
		Unresolved []Assignment            `json:"unresolved"`
	}{
		Summary:    result.Summary(),
		Sections:   perSection,
		Unresolved: lo.Ternary(result.unresolved == nil, []Assignment{}, result.unresolved),
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return errors.Wrap(err, "cannot write timetable json")
	}
	return nil
}
