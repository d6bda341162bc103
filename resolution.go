package objgraph

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/objgraph/objgraph/internal/graph"
	"github.com/objgraph/objgraph/internal/override"
)

// resolution is the state of one top-level Resolve call. It tracks the
// identifiers under construction so that a dependency cycle fails fast
// instead of recursing without bound.
//
// With a non-nil plan the resolution is a dry run: every decision is
// recorded and no constructor is invoked.
type resolution struct {
	c    *Container
	path graph.Path
	plan *graph.DependencyGraph
}

// resolve maps id through interface redirections scoped to declaringClass,
// returns the bound value if there is one, and constructs otherwise. The
// identifier actually resolved is returned alongside the instance.
func (r *resolution) resolve(id, declaringClass Identifier) (any, Identifier, error) {
	c := r.c

	target := Identifier(c.store.ResolveInterface(string(id), string(declaringClass)))
	if target != id {
		c.logger.Debug("redirected interface",
			zap.Stringer("interface", id),
			zap.Stringer("concrete", target),
			zap.Stringer("declaring_class", declaringClass),
		)
	}

	if v, ok := c.store.Get(string(target)); ok {
		if r.plan != nil {
			r.plan.AddNode(string(target), graph.Bound)
		}
		return v, target, nil
	}

	if err := r.path.Push(string(target)); err != nil {
		return nil, target, err
	}
	defer r.path.Pop()

	if r.path.Depth() > c.maxDepth {
		return nil, target, fmt.Errorf("%w: %d levels while resolving %s", ErrMaxDepthExceeded, c.maxDepth, target)
	}

	desc, err := c.types.Describe(target)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, target, NotFoundError{ID: target, Requested: id}
		}
		return nil, target, err
	}

	instance, err := r.newInstance(target, desc, declaringClass)
	if err != nil {
		return nil, target, err
	}

	if c.lifetime == Singleton && r.plan == nil {
		instance = c.store.BindIfAbsent(string(target), instance)
		c.logger.Debug("memoized instance", zap.Stringer("id", target))
	}

	return instance, target, nil
}

// newInstance resolves the constructor parameters of desc in declaration
// order and instantiates it.
func (r *resolution) newInstance(id Identifier, desc *TypeDescriptor, declaringClass Identifier) (any, error) {
	var args []any

	record := false
	if r.plan != nil {
		_, record = r.plan.AddNode(string(id), graph.Constructed)
	}

	if desc.HasConstructor {
		args = make([]any, len(desc.Parameters))
		for i, p := range desc.Parameters {
			v, decision, err := r.resolveParameter(p, declaringClass)
			if err != nil {
				return nil, ResolutionError{
					ID:             id,
					Parameter:      p.Name,
					DeclaringClass: p.DeclaringClass,
					Cause:          err,
				}
			}
			args[i] = v

			if record {
				r.plan.AddDecision(string(id), decision)
			}
			if r.plan != nil && decision.Source == graph.SourceResolved {
				r.plan.AddEdge(string(id), decision.Target)
			}
		}
	}

	if r.plan != nil {
		return nil, nil
	}

	instance, err := r.c.types.Instantiate(id, args)
	if err != nil {
		return nil, err
	}

	r.c.logger.Debug("constructed instance",
		zap.Stringer("id", id),
		zap.Int("parameters", len(args)),
	)

	if aware, ok := instance.(ContainerAware); ok {
		aware.SetContainer(r.c)
	}

	return instance, nil
}

// resolveParameter decides the value of one constructor parameter.
// declaringClass is the class that requested the instance being built.
//
// Precedence: the declaring-class flag, an override found on the
// parameter's declaring class or its ancestors, recursive resolution of the
// declared type, the default value, and finally nil.
func (r *resolution) resolveParameter(p Parameter, declaringClass Identifier) (any, graph.Decision, error) {
	c := r.c
	decision := graph.Decision{Parameter: p.Name}

	if declaringClass != "" && c.store.BoundToDeclaringClass(p.Name, string(p.DeclaringClass)) {
		decision.Source, decision.Target = graph.SourceDeclaringClass, string(declaringClass)
		return string(declaringClass), decision, nil
	}

	hit, ok := override.Find(c.store, c.hierarchy,
		override.Param{Name: p.Name, Type: string(p.Type)},
		string(p.DeclaringClass),
	)
	if ok {
		c.logger.Debug("applied parameter override",
			zap.String("parameter", p.Name),
			zap.Stringer("declaring_class", p.DeclaringClass),
			zap.String("bound_on", hit.Class),
			zap.Bool("by_name", hit.ByName),
		)
		decision.Source, decision.Target = graph.SourceOverride, hit.Class
		return hit.Value, decision, nil
	}

	if p.Typed() {
		// The parameter's own declaring class scopes the nested
		// resolution, not the class that requested this one.
		v, target, err := r.resolve(p.Type, p.DeclaringClass)
		decision.Source, decision.Target = graph.SourceResolved, string(target)
		return v, decision, err
	}

	if p.HasDefault {
		decision.Source = graph.SourceDefault
		return p.Default, decision, nil
	}

	decision.Source = graph.SourceZero
	return nil, decision, nil
}
