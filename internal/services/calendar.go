package services

import (
	"strconv"
	"time"
)

const (
	monthLayout = "2006-01"

	calDayPrefix = "cal:day:"
	calNavPrefix = "cal:nav:"
	calSkip      = "cal:skip"
)

// monthKeyboard renders one month of the date picker as inline buttons.
// Day buttons carry the concrete date, the arrow buttons carry the month to
// re-render, filler cells are inert.
func monthKeyboard(tag string, month time.Time) [][]Button {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	rows := [][]Button{
		{{Label: first.Format("January 2006"), Data: callbackData(tag, calSkip)}},
	}

	week := make([]Button, 0, 7)
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		week = append(week, Button{Label: wd, Data: callbackData(tag, calSkip)})
	}
	rows = append(rows, week)

	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7 // Monday-first grid

	row := make([]Button, 0, 7)
	for i := 0; i < offset; i++ {
		row = append(row, Button{Label: " ", Data: callbackData(tag, calSkip)})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
		row = append(row, Button{
			Label: strconv.Itoa(day),
			Data:  callbackData(tag, calDayPrefix+date.Format(dateLayout)),
		})
		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]Button, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, Button{Label: " ", Data: callbackData(tag, calSkip)})
		}
		rows = append(rows, row)
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	rows = append(rows, []Button{
		{Label: "‹", Data: callbackData(tag, calNavPrefix+prev.Format(monthLayout))},
		{Label: "›", Data: callbackData(tag, calNavPrefix+next.Format(monthLayout))},
	})

	return rows
}
