package main

import (
	"fmt"
	"strings"

	"github.com/trezcool/kalendar/core/calendar"
)

func (cli *commandLine) grid(date, lang string) error {
	loc := cli.conf.Calendar.Location
	ref := cli.now().In(loc)
	if date != "" {
		var err error
		if ref, err = calendar.ParseDate(date, loc); err != nil {
			return err
		}
	}

	grid, err := calendar.BuildMonthGrid(ref)
	if err != nil {
		return err
	}

	if cli.interactive() {
		fmt.Fprintf(cli.out, "%s %d\n", cli.tr.MonthName(grid.Month, lang), grid.Year)
		days := cli.tr.WeekdayNames(lang)
		for i, d := range days {
			days[i] = fmt.Sprintf("%3.3s", d)
		}
		fmt.Fprintln(cli.out, strings.Join(days, " "))
	}
	for _, week := range grid.Weeks() {
		cells := make([]string, len(week))
		for i, day := range week {
			if day == 0 {
				cells[i] = "   "
				continue
			}
			cells[i] = fmt.Sprintf("%3d", day)
		}
		fmt.Fprintln(cli.out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return nil
}
