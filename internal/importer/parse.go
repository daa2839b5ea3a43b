package importer

import (
	"fmt"
	"strings"
	"time"

	"focusboard/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// dueLayouts перечисляет поддерживаемые форматы даты дедлайна
var dueLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// columnIndexes хранит позиции распознанных колонок таблицы
type columnIndexes struct {
	title    int
	subject  int
	due      int
	priority int
}

// ParseTimetable извлекает задания из первой распознанной таблицы документа.
// Таблица распознается по заголовкам колонок; документ без такой таблицы
// считается ошибкой импорта.
func ParseTimetable(doc *goquery.Document, userID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	var parseErr error
	found := false

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols, headerRow, ok := detectColumns(table)
		if !ok {
			return true
		}
		found = true

		table.Find("tr").EachWithBreak(func(rowIndex int, row *goquery.Selection) bool {
			if headerRow && rowIndex == 0 {
				return true
			}
			cells := row.Find("td")
			if cells.Length() == 0 {
				return true
			}

			assignment, err := parseRow(cells, cols, userID)
			if err != nil {
				parseErr = err
				return false
			}

			assignments = append(assignments, assignment)
			return true
		})

		return false
	})

	if parseErr != nil {
		return nil, parseErr
	}
	if !found {
		return nil, fmt.Errorf("no assignment table found in document")
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("assignment table contains no rows")
	}

	return assignments, nil
}

// detectColumns сопоставляет заголовки таблицы с ожидаемыми колонками.
// Второй результат сообщает, что заголовки лежат в первой строке как td.
func detectColumns(table *goquery.Selection) (columnIndexes, bool, bool) {
	cols := columnIndexes{title: -1, subject: -1, due: -1, priority: -1}

	headerRow := false
	headers := table.Find("th")
	if headers.Length() == 0 {
		headers = table.Find("tr").First().Find("td")
		headerRow = true
	}

	headers.Each(func(i int, header *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(header.Text()))
		switch {
		case text == "title" || text == "assignment" || text == "task":
			cols.title = i
		case text == "subject" || text == "course":
			cols.subject = i
		case strings.HasPrefix(text, "due") || text == "deadline":
			cols.due = i
		case text == "priority":
			cols.priority = i
		}
	})

	return cols, headerRow, cols.title >= 0 && cols.due >= 0
}

// parseRow собирает задание из ячеек строки таблицы
func parseRow(cells *goquery.Selection, cols columnIndexes, userID int64) (model.Assignment, error) {
	title := cellText(cells, cols.title)
	if title == "" {
		return model.Assignment{}, fmt.Errorf("assignment row has empty title")
	}

	assignment := model.Assignment{
		UserID:   userID,
		Title:    title,
		Subject:  cellText(cells, cols.subject),
		Priority: model.PriorityMedium,
	}

	dueText := cellText(cells, cols.due)
	if dueText != "" {
		due, err := parseDueDate(dueText)
		if err != nil {
			return model.Assignment{}, err
		}
		assignment.DueAt = &due
	}

	if text := strings.ToLower(cellText(cells, cols.priority)); text != "" {
		priority := model.Priority(text)
		if !priority.IsValid() {
			return model.Assignment{}, fmt.Errorf("unknown priority %q in assignment row", text)
		}
		assignment.Priority = priority
	}

	return assignment, nil
}

// parseDueDate пробует поддерживаемые форматы даты по очереди
func parseDueDate(text string) (time.Time, error) {
	for _, layout := range dueLayouts {
		if due, err := time.Parse(layout, text); err == nil {
			return due, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", text)
}

// cellText возвращает текст ячейки по индексу колонки
func cellText(cells *goquery.Selection, index int) string {
	if index < 0 || index >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(index).Text())
}
