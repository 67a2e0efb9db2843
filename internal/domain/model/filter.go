// filter.go — критерии фильтрации таблицы ресурсов.
package model

import (
	"errors"
	"fmt"
)

// ErrUnknownField — неизвестное имя поля фильтра.
var ErrUnknownField = errors.New("неизвестное поле фильтра")

// FilterField — имя изменяемого поля FilterCriteria.
type FilterField string

// Поля фильтра (имена совпадают с параметрами формы и JSON API).
const (
	FieldName      FilterField = "name"
	FieldSubject   FilterField = "subject"
	FieldType      FilterField = "type"
	FieldStartDate FilterField = "startDate"
	FieldEndDate   FilterField = "endDate"
)

// ParseFilterField проверяет имя поля фильтра.
func ParseFilterField(s string) (FilterField, error) {
	switch f := FilterField(s); f {
	case FieldName, FieldSubject, FieldType, FieldStartDate, FieldEndDate:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// FilterCriteria — ограничения, введённые пользователем.
// Пустое значение означает отсутствие ограничения.
// Даты хранятся строкой и разбираются при сравнении.
type FilterCriteria struct {
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Set меняет ровно одно поле, остальные остаются как были.
func (c *FilterCriteria) Set(field FilterField, value string) error {
	switch field {
	case FieldName:
		c.Name = value
	case FieldSubject:
		c.Subject = value
	case FieldType:
		c.Type = value
	case FieldStartDate:
		c.StartDate = value
	case FieldEndDate:
		c.EndDate = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// IsEmpty возвращает true, если ни одно ограничение не задано.
func (c FilterCriteria) IsEmpty() bool {
	return c == FilterCriteria{}
}
