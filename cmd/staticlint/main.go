// Package main реализует команду «staticlint», основанную на multichecker,
// для статического анализа кода сервиса. Инструмент агрегирует набор анализаторов -
// стандартных (golang.org/x/tools), сторонних (honnef.co/go/tools) и собственных -
// и выполняет их через golang.org/x/tools/go/analysis/multichecker.
//
// Использование:
//
//  1. Установить инструмент:
//     go install ./cmd/staticlint
//
//  2. Запустить на пакетах:
//     staticlint ./...
//
// Включённые анализаторы:
//   - printf, shadow, structtag, nilness, unusedresult из golang.org/x/tools;
//   - SA* правила staticcheck;
//   - S1* правила simple;
//   - exitmain: запрещает прямой вызов os.Exit в main() пакета main;
//   - nostdlog: запрещает стандартный log и fmt.Print* в пакетах internal/.
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		unusedresult.Analyzer,
		ExitMainAnalyzer,
		NoStdLogAnalyzer,
	}

	for _, la := range staticcheck.Analyzers {
		if strings.HasPrefix(la.Analyzer.Name, "SA") {
			list = append(list, la.Analyzer)
		}
	}
	for _, la := range simple.Analyzers {
		list = append(list, la.Analyzer)
	}

	return list
}

func main() {
	multichecker.Main(analyzers()...)
}
