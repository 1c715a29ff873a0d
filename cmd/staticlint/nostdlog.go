package main

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoStdLogAnalyzer запрещает в пакетах internal/ стандартный log и печать через fmt.Print*.
// Логи сервиса пишутся только через переданный *zap.SugaredLogger.
var NoStdLogAnalyzer = &analysis.Analyzer{
	Name:     "nostdlog",
	Doc:      "reports use of the standard log package and fmt.Print* in internal packages",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNoStdLog,
}

func runNoStdLog(pass *analysis.Pass) (interface{}, error) {
	if !strings.Contains(pass.Pkg.Path(), "/internal/") {
		return nil, nil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if isTestFile(pass, call) {
			return
		}
		switch {
		case isPkgFunc(pass, call, "log", ""):
			pass.Reportf(call.Pos(), "use the zap logger instead of the standard log package")
		case isPkgFunc(pass, call, "fmt", ""):
			name := call.Fun.(*ast.SelectorExpr).Sel.Name
			if strings.HasPrefix(name, "Print") {
				pass.Reportf(call.Pos(), "use the zap logger instead of fmt.%s", name)
			}
		}
	})
	return nil, nil
}

func isTestFile(pass *analysis.Pass, n ast.Node) bool {
	return strings.HasSuffix(pass.Fset.File(n.Pos()).Name(), "_test.go")
}
