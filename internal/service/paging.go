// paging.go — постраничная нарезка отфильтрованных строк для отображения.
package service

import "github.com/bigkaa/goartstore/resource-browser/internal/domain/model"

// Page — одна страница строк.
type Page struct {
	Rows []model.FileRow
	// Number — номер страницы, начиная с 1
	Number     int
	Size       int
	TotalPages int
	// TotalRows — количество строк до нарезки
	TotalRows int
}

// HasPrev сообщает, есть ли предыдущая страница.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext сообщает, есть ли следующая страница.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate возвращает страницу number размером size.
// Номер приводится к диапазону [1, TotalPages]; пустой набор — одна пустая страница.
func Paginate(rows []model.FileRow, number, size int) Page {
	if size < 1 {
		size = 1
	}
	totalPages := (len(rows) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := min(start+size, len(rows))
	pageRows := []model.FileRow{}
	if start < end {
		pageRows = rows[start:end]
	}

	return Page{
		Rows:       pageRows,
		Number:     number,
		Size:       size,
		TotalPages: totalPages,
		TotalRows:  len(rows),
	}
}
