package reactive

import (
	"fmt"
	"reflect"
	"time"
)

// watchExpr builds a derived view projected through a compiled expression.
// The expression is compiled once up front; each committed snapshot is bound
// into the evaluation environment and the result suppressed on deep equality.
// Evaluation failures are logged and surface as nil derived values.
func watchExpr[S any](cfg *config, kind string, parent *Flow[S], bind func(S) map[string]any, expression string) (*View[any], error) {
	if expression == "" {
		return nil, fmt.Errorf("reactive: expression must not be empty")
	}
	evaluator, err := resolveEvaluator(cfg)
	if err != nil {
		return nil, err
	}
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return nil, wrapEvaluationError(evaluatorEngineName(evaluator), expression, kind, err)
	}

	engine := evaluatorEngineName(evaluator)
	logger := cfg.evaluatorLoggerOrNoop()
	project := func(snapshot S) any {
		ctx := EvalContext{Snapshot: bind(snapshot), Collection: kind}
		start := time.Now()
		value, evalErr := rule.Evaluate(ctx)
		evalErr = wrapEvaluationError(engine, expression, kind, evalErr)
		logger.LogEvaluation(EvaluatorLogEvent{
			Engine:     engine,
			Expr:       expression,
			Collection: kind,
			Duration:   time.Since(start),
			Err:        evalErr,
		})
		if evalErr != nil {
			return nil
		}
		return value
	}
	return derive(parent, project, func(a, b any) bool {
		return reflect.DeepEqual(a, b)
	}), nil
}
