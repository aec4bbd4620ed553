package sqlstore

import "time"

// TableName is the table documents are stored in.
const TableName = "documents"

// DocumentRecord is one stored document.
type DocumentRecord struct {
	ProjectID string    `gorm:"column:project_id;primaryKey;size:191"`
	ID        string    `gorm:"column:id;primaryKey;size:191"`
	Kind      string    `gorm:"column:kind;size:64;index;not null"`
	Body      string    `gorm:"column:body;type:longtext;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName implements gorm's tabler interface.
func (DocumentRecord) TableName() string {
	return TableName
}

var requiredColumns = []string{"project_id", "id", "kind", "body", "updated_at"}
