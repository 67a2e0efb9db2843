// Пакет model — доменные модели Resource Browser.
// FileRow — строка таблицы загруженных ресурсов (из Catalog API).
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FileRow — один загруженный ресурс, отображаемый в таблице.
// После получения из Catalog API не изменяется.
type FileRow struct {
	// ID — идентификатор строки (строка или число в исходном JSON)
	ID string
	// Name — имя ресурса
	Name string
	// Subject — название дисциплины (кафедры)
	Subject string
	// Type — тип ресурса (конспект, экзамен, программа курса и т.п.)
	Type string
	// UploadDate — дата загрузки в том виде, в каком её вернул Catalog API.
	// Разбирается только при сравнении в фильтре по датам.
	UploadDate string
	// Extra — прочие поля строки, нужные только для отображения
	Extra map[string]any
}

// Известные JSON-ключи строки. Остальные ключи попадают в Extra.
const (
	keyID         = "id"
	keyName       = "name"
	keySubject    = "subject"
	keyType       = "type"
	keyUploadDate = "uploadDate"
)

// UnmarshalJSON разбирает строку из ответа Catalog API.
// id допускается как строкой, так и числом.
func (r *FileRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("разбор строки файла: %w", err)
	}

	row := FileRow{}
	var err error
	if row.ID, err = rawID(raw[keyID]); err != nil {
		return err
	}
	for key, dst := range map[string]*string{
		keyName:       &row.Name,
		keySubject:    &row.Subject,
		keyType:       &row.Type,
		keyUploadDate: &row.UploadDate,
	} {
		if v, ok := raw[key]; ok && string(v) != "null" {
			if err := json.Unmarshal(v, dst); err != nil {
				return fmt.Errorf("поле %q: %w", key, err)
			}
		}
	}

	for key, v := range raw {
		switch key {
		case keyID, keyName, keySubject, keyType, keyUploadDate:
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("поле %q: %w", key, err)
		}
		if row.Extra == nil {
			row.Extra = make(map[string]any)
		}
		row.Extra[key] = val
	}

	*r = row
	return nil
}

// MarshalJSON сериализует строку обратно в плоский JSON-объект
// (известные поля + Extra).
func (r FileRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[keyID] = r.ID
	out[keyName] = r.Name
	out[keySubject] = r.Subject
	out[keyType] = r.Type
	out[keyUploadDate] = r.UploadDate
	return json.Marshal(out)
}

// rawID приводит id (строка или число) к строке.
func rawID(v json.RawMessage) (string, error) {
	if len(v) == 0 || string(v) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", fmt.Errorf("поле %q: ожидалась строка или число", keyID)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// Dataset — данные, загружаемые при монтировании таблицы.
type Dataset struct {
	// Files — все строки таблицы
	Files []FileRow
	// FileTypes — варианты для фильтра по типу
	FileTypes []string
	// Subjects — варианты для фильтра по дисциплине
	Subjects []string
}
