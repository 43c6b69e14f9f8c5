package dialect

import (
	"fmt"
	"strconv"
	"strings"
)

type SQLServer struct{}

func NewSQLServerDialect() Dialect {
	return &SQLServer{}
}

func (s SQLServer) Name() string {
	return "sqlserver"
}

func (s SQLServer) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (s SQLServer) Placeholder(n int) string {
	return "@p" + strconv.Itoa(n)
}

func (s SQLServer) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return fmt.Sprintf("0x%x", b)
	}
	return renderLiteral(v)
}
