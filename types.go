package reactive

import (
	"time"

	"github.com/goliatone/go-reactive/pkg/activity"
)

// EvalContext carries the inputs needed when evaluating an expression against
// a collection snapshot.
type EvalContext struct {
	// Snapshot holds the prepared snapshot bindings merged into the
	// evaluation environment (for example "items" and "size" for a list).
	Snapshot   any
	Collection string
	Now        *time.Time
	Args       map[string]any
	Metadata   map[string]any
}

func (ctx EvalContext) withDefaultNow() EvalContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx EvalContext) withDefaultMaps() EvalContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) withDefaults() EvalContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx EvalContext) collectionLabel() string {
	if ctx.Collection != "" {
		return ctx.Collection
	}
	return "unknown"
}

// Evaluator executes expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a collection facade at construction time.
type Option func(*config)

type config struct {
	evaluator     Evaluator
	programCache  ProgramCache
	functions     *FunctionRegistry
	evalLogger    EvaluatorLogger
	changeLogger  ChangeLogger
	activityHooks activity.Hooks
}

func applyOptions(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) changeLoggerOrNoop() ChangeLogger {
	if c.changeLogger != nil {
		return c.changeLogger
	}
	return noopChangeLogger{}
}

func (c config) evaluatorLoggerOrNoop() EvaluatorLogger {
	if c.evalLogger != nil {
		return c.evalLogger
	}
	return noopEvaluatorLogger{}
}

// WithEvaluator configures the expression evaluator used by Evaluate and
// WatchExpr. When unset, an expr-lang evaluator is constructed on demand.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// WithActivityHooks attaches activity hooks notified after every committed
// mutation. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := cloneActivityHooks(hooks)
	return func(cfg *config) {
		cfg.activityHooks = normalized
	}
}

func cloneActivityHooks(hooks activity.Hooks) activity.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]activity.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return activity.Hooks(normalized)
}
