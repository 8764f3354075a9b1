package filter

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipp/backend/internal/textfold"
)

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a term into a LIKE pattern matching it anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(textfold.Lower(term)) + "%"
}

// lowerFunc names the SQL function that lower-cases text the way
// textfold.Lower does.
func lowerFunc(builder clause.Builder) string {
	if dialectOf(builder) == dialectPostgres {
		return "LOWER"
	}
	return textfold.FuncName
}

func dialectOf(builder clause.Builder) string {
	if stmt, ok := builder.(*gorm.Statement); ok && stmt.Dialector != nil {
		return stmt.Dialector.Name()
	}
	return dialectSQLite
}

func column(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

// TextContains matches rows whose scalar column contains Term, ignoring case.
// Negate inverts the test.
type TextContains struct {
	Column string
	Term   string
	Negate bool
}

func (e TextContains) Build(builder clause.Builder) {
	builder.WriteString(lowerFunc(builder) + "(")
	builder.WriteQuoted(column(e.Column))
	builder.WriteString(")")
	if e.Negate {
		builder.WriteString(" NOT")
	}
	builder.WriteString(` LIKE `)
	builder.AddVar(builder, containsPattern(e.Term))
	builder.WriteString(` ESCAPE '\'`)
}

// SetContains matches rows whose JSON array column has at least one member
// containing Term. When Key is set the members are objects and the named
// property is compared instead of the member itself. Negate turns the test
// into "no member contains Term". Key is never taken from user input.
type SetContains struct {
	Column string
	Key    string
	Term   string
	Negate bool
}

func (e SetContains) Build(builder clause.Builder) {
	if e.Negate {
		builder.WriteString("NOT ")
	}
	builder.WriteString("EXISTS (SELECT 1 FROM ")

	switch dialectOf(builder) {
	case dialectPostgres:
		if e.Key == "" {
			builder.WriteString("jsonb_array_elements_text(CAST(")
			builder.WriteQuoted(column(e.Column))
			builder.WriteString(" AS jsonb)) AS je(value) WHERE LOWER(je.value)")
		} else {
			builder.WriteString("jsonb_array_elements(CAST(")
			builder.WriteQuoted(column(e.Column))
			builder.WriteString(" AS jsonb)) AS je(value) WHERE LOWER(je.value->>'" + e.Key + "')")
		}
	default:
		builder.WriteString("json_each(")
		builder.WriteQuoted(column(e.Column))
		builder.WriteString(") AS je WHERE " + textfold.FuncName + "(")
		if e.Key == "" {
			builder.WriteString("je.value")
		} else {
			builder.WriteString("json_extract(je.value, ")
			builder.AddVar(builder, "$."+e.Key)
			builder.WriteString(")")
		}
		builder.WriteString(")")
	}

	builder.WriteString(" LIKE ")
	builder.AddVar(builder, containsPattern(e.Term))
	builder.WriteString(` ESCAPE '\')`)
}

// NutrientBound compares nutrition.<Macro>.amount against Value. Op is one of
// ">=" or "<=". Macro must be one of Macros.
type NutrientBound struct {
	Column string
	Macro  string
	Op     string
	Value  float64
}

func (e NutrientBound) Build(builder clause.Builder) {
	if !isMacro(e.Macro) || (e.Op != ">=" && e.Op != "<=") {
		if stmt, ok := builder.(*gorm.Statement); ok {
			stmt.AddError(gorm.ErrInvalidField)
		}
		return
	}

	switch dialectOf(builder) {
	case dialectPostgres:
		builder.WriteString("CAST(CAST(")
		builder.WriteQuoted(column(e.Column))
		builder.WriteString(" AS jsonb)->'" + e.Macro + "'->>'amount' AS double precision)")
	default:
		builder.WriteString("json_extract(")
		builder.WriteQuoted(column(e.Column))
		builder.WriteString(", '$." + e.Macro + ".amount')")
	}
	builder.WriteString(" " + e.Op + " ")
	builder.AddVar(builder, e.Value)
}

// AnyOf joins expressions with OR inside parentheses.
type AnyOf []clause.Expression

func (e AnyOf) Build(builder clause.Builder) {
	if len(e) == 0 {
		builder.WriteString("1 = 1")
		return
	}
	builder.WriteByte('(')
	for i, expr := range e {
		if i > 0 {
			builder.WriteString(" OR ")
		}
		expr.Build(builder)
	}
	builder.WriteByte(')')
}
