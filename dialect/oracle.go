package dialect

import (
	"fmt"
	"strconv"
)

type Oracle struct {
	Postgres
}

func NewOracleDialect() Dialect {
	return &Oracle{}
}

func (o Oracle) Name() string {
	return "oracle"
}

func (o Oracle) Placeholder(n int) string {
	return ":" + strconv.Itoa(n)
}

func (o Oracle) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return fmt.Sprintf("HEXTORAW('%x')", b)
	}
	return renderLiteral(v)
}
