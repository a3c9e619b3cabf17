// Package schema emits CREATE TABLE statements from an analyzed model
// shape, the C3 schema emitter of the specification.
package schema

import (
	"strings"

	"github.com/FocuswithJustin/quill/shape"
)

// CreateTable emits a STRICT, WITHOUT ROWID table declaration for
// container from model, per §4.3. model must already satisfy
// shape.ValidateModel; CreateTable re-validates defensively since it is
// also reachable directly from integrators bypassing the builder.
func CreateTable(model *shape.Shape, container string) (string, error) {
	if err := shape.ValidateModel(model); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(container)
	b.WriteString(" (\n")

	for i, f := range model.Fields {
		b.WriteString("\t")
		b.WriteString(f.Label)
		b.WriteString(" ")
		b.WriteString(f.Kind.SQLType())
		if f.Label == "uuid" {
			b.WriteString(" PRIMARY KEY")
		} else if !f.Optional {
			b.WriteString(" NOT NULL")
		}
		if i < len(model.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString(") STRICT, WITHOUT ROWID;")
	return b.String(), nil
}
