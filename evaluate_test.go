package reactive

import (
	"errors"
	"testing"
)

func TestListEvaluateDefaultEngine(t *testing.T) {
	l := NewListOf("A", "B", "C")

	response, err := l.Evaluate("size")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != 3 {
		t.Fatalf("expected size 3, got %v", response.Value)
	}

	response, err = l.Evaluate(`"B" in items`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected membership to hold, got %v", response.Value)
	}
}

func TestEvaluateEmptyExpressionFails(t *testing.T) {
	l := NewList[int]()
	if _, err := l.Evaluate(""); err == nil {
		t.Fatalf("expected empty expression to fail")
	}
}

func TestEvaluateWithArgs(t *testing.T) {
	m := NewMapOf(map[string]int{"a": 1})

	response, err := m.EvaluateWith(EvalContext{Args: map[string]any{"limit": 5}}, "size < args.limit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected comparison to hold, got %v", response.Value)
	}
}

func TestEvaluateCustomFunction(t *testing.T) {
	l := NewListFrom([]int{1, 2, 3}, WithCustomFunction("double", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("double expects one argument")
		}
		n, ok := args[0].(int)
		if !ok {
			return nil, errors.New("double expects an int")
		}
		return n * 2, nil
	}))

	response, err := l.Evaluate("double(size)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != 6 {
		t.Fatalf("expected 6, got %v", response.Value)
	}
}

func TestEvaluateLogsAttempts(t *testing.T) {
	var events []EvaluatorLogEvent
	l := NewListFrom([]string{"A"}, WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		events = append(events, event)
	})))

	if _, err := l.Evaluate("size"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one log event, got %d", len(events))
	}
	if events[0].Engine != "expr" || events[0].Collection != "list" || events[0].Err != nil {
		t.Fatalf("unexpected log event: %+v", events[0])
	}
}

func TestEvaluateCELEngine(t *testing.T) {
	m := NewMapOf(map[string]int{"a": 1, "b": 2}, WithEvaluator(NewCELEvaluator()))

	response, err := m.Evaluate("size >= 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected comparison to hold, got %v", response.Value)
	}
}

func TestEvaluateCELCustomFunction(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("double", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("double expects one argument")
		}
		n, ok := args[0].(int64)
		if !ok {
			return nil, errors.New("double expects an int")
		}
		return n * 2, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l := NewListFrom([]int{1, 2, 3}, WithEvaluator(NewCELEvaluator(CELWithFunctionRegistry(registry))))

	response, err := l.Evaluate(`call("double", size)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != int64(6) {
		t.Fatalf("expected 6, got %v", response.Value)
	}
}

func TestEvaluateUsesProgramCache(t *testing.T) {
	cache := NewMemoryProgramCache()
	l := NewListFrom([]int{1, 2}, WithProgramCache(cache))

	if _, err := l.Evaluate("size"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Get("size"); !ok {
		t.Fatalf("expected compiled program cached under expression key")
	}
}

func TestEvaluationErrorMetadata(t *testing.T) {
	l := NewListOf(1)

	_, err := l.Evaluate("size +")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T: %v", err, err)
	}
	if evalErr.Expr != "size +" || evalErr.Collection != "list" {
		t.Fatalf("unexpected error metadata: %+v", evalErr)
	}
}
