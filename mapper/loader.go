package mapper

import (
	"context"
	"fmt"
	"log/slog"
)

// Loader validates a mapping definition and builds an engine from it.
// It keeps no state between calls.
type Loader struct {
	resolver *Resolver
	factory  Factory
	logger   *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(resolver *Resolver, factory Factory, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{resolver: resolver, factory: factory, logger: logger}
}

// Load resolves definitionID, validates it and, if valid, resolves it again
// and builds the engine. A non-nil thesaurus is treated as literal content.
// Validation problems are returned as *ValidationError and no engine is built.
func (l *Loader) Load(ctx context.Context, definitionID string, thesaurus *string) (Engine, error) {
	def, err := l.resolver.Resolve(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	problems := l.factory.Validate(def)
	_ = def.Close()
	if len(problems) > 0 {
		l.logger.DebugContext(ctx, "mapping definition rejected", "problems", len(problems))
		return nil, &ValidationError{Errors: problems}
	}

	def, err = l.resolver.Resolve(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	defer def.Close()

	var th *Thesaurus
	if thesaurus != nil {
		res := StringResource(*thesaurus)
		defer res.Close()
		th = &Thesaurus{Content: res, Format: ThesaurusFormat(*thesaurus)}
	}
	engine, err := l.factory.Load(ctx, def, th)
	if err != nil {
		return nil, fmt.Errorf("loading mapping definition: %w", err)
	}
	return engine, nil
}
