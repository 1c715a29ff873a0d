package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestExitMainAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), ExitMainAnalyzer, "exitmain")
}

func TestNoStdLogAnalyzer(t *testing.T) {
	analysistest.Run(t, analysistest.TestData(), NoStdLogAnalyzer, "example.com/internal/svc")
}

func TestAnalyzersIncludeCustomChecks(t *testing.T) {
	names := make(map[string]bool)
	for _, a := range analyzers() {
		names[a.Name] = true
	}
	assert.True(t, names["exitmain"])
	assert.True(t, names["nostdlog"])
	assert.True(t, names["shadow"])
}
