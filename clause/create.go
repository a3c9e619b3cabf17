package clause

import (
	"strings"

	"github.com/FocuswithJustin/quill/shape"
)

// InsertAction selects INSERT's conflict-resolution clause.
type InsertAction int

const (
	Insert InsertAction = iota
	InsertOrReplace
	InsertOrIgnore
)

func (a InsertAction) keyword() string {
	switch a {
	case InsertOrReplace:
		return "INSERT OR REPLACE"
	case InsertOrIgnore:
		return "INSERT OR IGNORE"
	default:
		return "INSERT"
	}
}

// CreateStatement emits an INSERT for every field of model, bound by
// name (":field"), per §4.4.
func CreateStatement(model *shape.Shape, container string, action InsertAction) (string, error) {
	if err := shape.ValidateModel(model); err != nil {
		return "", err
	}

	labels := model.Labels()
	placeholders := make([]string, len(labels))
	for i, l := range labels {
		placeholders[i] = ":" + l
	}

	var b strings.Builder
	b.WriteString(action.keyword())
	b.WriteString(" INTO ")
	b.WriteString(container)
	b.WriteString(" (")
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(placeholders, ", "))
	b.WriteString(");")
	return b.String(), nil
}
