package tiptap

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/aisa-it/shopadmin/internal/pagecontent/editor/doctree"
)

// Document - дерево документа, хранимое и передаваемое в TipTap JSON.
type Document struct {
	Root *doctree.Node
}

func NewDocument(root *doctree.Node) Document {
	return Document{Root: root}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	root, err := ParseJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	d.Root = root
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.Root == nil {
		return []byte("null"), nil
	}
	return Serialize(d.Root)
}

// Value реализует интерфейс driver.Valuer для сохранения Document в JSONB.
func (d Document) Value() (driver.Value, error) {
	if d.Root == nil {
		return nil, nil
	}
	return Serialize(d.Root)
}

// Scan реализует интерфейс sql.Scanner для чтения Document из JSONB.
func (d *Document) Scan(value any) error {
	if value == nil {
		*d = Document{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return d.UnmarshalJSON(data)
}

// GormDataType указывает GORM использовать тип JSONB для PostgreSQL колонок.
func (Document) GormDataType() string {
	return "jsonb"
}
