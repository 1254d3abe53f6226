package reactive

import (
	"fmt"
	"time"
)

// Response stores a typed result produced by an evaluator.
type Response[T any] struct {
	Value T
}

// evaluateExpression runs one expression against the prepared snapshot
// bindings, measuring duration and logging the attempt.
func evaluateExpression(cfg *config, kind string, bindings map[string]any, ctx EvalContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("reactive: expression must not be empty")
	}
	evaluator, err := resolveEvaluator(cfg)
	if err != nil {
		return Response[any]{}, err
	}
	if ctx.Snapshot == nil {
		ctx.Snapshot = bindings
	}
	if ctx.Collection == "" {
		ctx.Collection = kind
	}
	ctx = ctx.withDefaults()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, ctx.collectionLabel(), evalErr)
	cfg.evaluatorLoggerOrNoop().LogEvaluation(EvaluatorLogEvent{
		Engine:     engine,
		Expr:       expr,
		Collection: ctx.collectionLabel(),
		Duration:   duration,
		Err:        evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

// resolveEvaluator returns the configured evaluator, constructing and caching
// a default expr evaluator when none was supplied.
func resolveEvaluator(cfg *config) (Evaluator, error) {
	if cfg.evaluator != nil {
		return cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	if cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(cfg.functions))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	cfg.evaluator = defaultEvaluator
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*reactive.exprEvaluator":
		return "expr"
	case "*reactive.celEvaluator":
		return "cel"
	case "*reactive.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
