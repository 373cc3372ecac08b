// Генерация таблицы кодов ошибок API сервиса контента страниц в формате Markdown.
//
// Основные возможности:
//   - Разбор файла с определениями apierrors.DefinedError через go/ast.
//   - Таблица с кодом, HTTP статусом и сообщениями на двух языках.
package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
)

// Пример запуска: go run ./cmd/docsgen --out docs/api_errors.md
func main() {
	errorsFile := flag.String("src", "internal/pagecontent/apierrors/apierrors.go", "Path of apierrors.go")
	outputMd := flag.String("out", "api_errors.md", "Path to output md")
	flag.Parse()

	slog.Info("Generate api errors docs", "src", *errorsFile, "out", *outputMd)

	rows, err := parseErrors(*errorsFile)
	if err != nil {
		slog.Error("Parse errors file", "err", err)
		os.Exit(1)
	}

	out, err := os.Create(*outputMd)
	if err != nil {
		slog.Error("Create output file", "err", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeDocs(out, rows); err != nil {
		slog.Error("Generate docs fail", "err", err)
		os.Exit(1)
	}
	slog.Info("Docs generated", "errors", len(rows))
}

type errorRow struct {
	Code   string
	Status string
	Err    string
	RuErr  string
}

func parseErrors(path string) ([]errorRow, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, 0)
	if err != nil {
		return nil, err
	}
	return collectErrors(f), nil
}

// collectErrors собирает объявления вида Name = DefinedError{...} в порядке их следования в файле.
func collectErrors(f *ast.File) []errorRow {
	var rows []errorRow
	ast.Inspect(f, func(n ast.Node) bool {
		spec, ok := n.(*ast.ValueSpec)
		if !ok {
			return true
		}
		for _, v := range spec.Values {
			lit, ok := v.(*ast.CompositeLit)
			if !ok || !isDefinedError(lit.Type) {
				continue
			}
			rows = append(rows, rowFromLiteral(lit))
		}
		return false
	})
	return rows
}

func isDefinedError(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name == "DefinedError"
	case *ast.SelectorExpr:
		return t.Sel.Name == "DefinedError"
	}
	return false
}

func rowFromLiteral(lit *ast.CompositeLit) errorRow {
	row := errorRow{Status: "StatusBadRequest"}
	for _, el := range lit.Elts {
		kv, ok := el.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		switch fmt.Sprint(kv.Key) {
		case "Code":
			row.Code = stringValue(kv.Value)
		case "StatusCode":
			if sel, ok := kv.Value.(*ast.SelectorExpr); ok {
				row.Status = sel.Sel.Name
			}
		case "Err":
			row.Err = stringValue(kv.Value)
		case "RuErr":
			row.RuErr = stringValue(kv.Value)
		}
	}
	return row
}

func stringValue(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.BasicLit:
		if s, err := strconv.Unquote(v.Value); err == nil {
			return s
		}
		return v.Value
	case *ast.BinaryExpr:
		return stringValue(v.X) + stringValue(v.Y)
	}
	return ""
}

func writeDocs(w io.Writer, rows []errorRow) error {
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			md.Bold(r.Code),
			fmt.Sprintf("%s %s", statusCode(r.Status), md.Italic(r.Status)),
			md.Code(r.Err),
			md.Code(r.RuErr),
		})
	}

	return md.NewMarkdown(w).
		H1("Перечень кодов ошибок").
		PlainText("Ошибки API сервиса контента страниц. Шаблон %s заменяется подробностями ошибки.").
		CustomTable(md.TableSet{
			Header: []string{"Код", "HTTP код", "Сообщение", "Сообщение на русском"},
			Rows:   table,
		}, md.TableOptions{
			AutoWrapText: false,
		}).Build()
}

var statusCodes = map[string]int{
	"StatusBadRequest":            http.StatusBadRequest,
	"StatusUnauthorized":          http.StatusUnauthorized,
	"StatusForbidden":             http.StatusForbidden,
	"StatusNotFound":              http.StatusNotFound,
	"StatusMethodNotAllowed":      http.StatusMethodNotAllowed,
	"StatusConflict":              http.StatusConflict,
	"StatusRequestEntityTooLarge": http.StatusRequestEntityTooLarge,
	"StatusUnprocessableEntity":   http.StatusUnprocessableEntity,
	"StatusTooManyRequests":       http.StatusTooManyRequests,
	"StatusInternalServerError":   http.StatusInternalServerError,
	"StatusServiceUnavailable":    http.StatusServiceUnavailable,
}

func statusCode(name string) string {
	if code, ok := statusCodes[name]; ok {
		return strconv.Itoa(code)
	}
	return strings.TrimPrefix(name, "Status")
}
