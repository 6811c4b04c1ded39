// Package recommend builds category-level advice from survey scores. It
// prompts a completion service for a summary plus four recommendations and
// deterministically repairs whatever text comes back, so downstream report
// generation always receives a full Result.
package recommend

import (
	"go.uber.org/zap"

	"github.com/shaz1409/maturity-auto/internal/survey"
	"github.com/shaz1409/maturity-auto/internal/utils"
)

// Engine produces one Result per category. Completion failures downgrade to
// fixed fallback text instead of propagating: one bad category must not sink
// a whole report run.
type Engine struct {
	completer Completer
	logger    *zap.SugaredLogger
}

func NewEngine(completer Completer, logger *zap.SugaredLogger) *Engine {
	return &Engine{completer: completer, logger: logger}
}

// Generate asks the completion service for advice on one category and parses
// the reply. The returned Result always holds exactly four items.
func (e *Engine) Generate(category string, score float64, questions []survey.QuestionScore) Result {
	reply, err := e.completer.Complete(SystemPrompt, BuildPrompt(category, score, questions))
	if err != nil {
		e.logger.Warnf("Recommendation request failed for %q: %v", category, err)
		return Fallback(err)
	}
	return ParseReply(reply)
}

// Fallback is the result used when no reply could be obtained at all. The
// items are deliberately generic; the summary carries the failure reason.
func Fallback(err error) Result {
	return Result{
		Summary: utils.Truncate("Error: "+err.Error(), MaxSummaryLen),
		Items: []string{
			"Recommendation 1: Review current processes",
			"Recommendation 2: Identify improvement areas",
			"Recommendation 3: Implement best practices",
			"Recommendation 4: Monitor progress",
		},
	}
}
