package reflection

import (
	"fmt"
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Analyzer performs reflection-based analysis of constructor functions.
// It caches analysis results for performance.
type Analyzer struct {
	mu    sync.RWMutex
	cache map[uintptr]*ConstructorInfo
}

// ConstructorInfo contains analyzed information about a constructor function.
type ConstructorInfo struct {
	Type           reflect.Type
	Value          reflect.Value
	Parameters     []ParameterInfo
	Result         reflect.Type // First return value
	HasErrorReturn bool         // Returns error as last value
}

// ParameterInfo describes a single constructor parameter.
type ParameterInfo struct {
	Type  reflect.Type
	Index int

	// Class is the identifier of the parameter's declared class or
	// interface, empty for scalars, slices, maps, funcs and channels.
	Class string
}

// New creates a new Analyzer.
func New() *Analyzer {
	return &Analyzer{
		cache: make(map[uintptr]*ConstructorInfo),
	}
}

// Analyze analyzes a constructor function.
//
// Accepted shapes are func(...) T and func(...) (T, error). Variadic
// constructors are rejected since parameters are resolved one by one.
func (a *Analyzer) Analyze(constructor any) (*ConstructorInfo, error) {
	if constructor == nil {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	val := reflect.ValueOf(constructor)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %s", typ)
	}

	// Check for nil function values (typed nil)
	if val.IsNil() {
		return nil, fmt.Errorf("constructor cannot be nil")
	}

	// Different functions with the same signature are cached separately.
	// Closures of one literal share code, so the hit is rebound to val.
	cacheKey := val.Pointer()

	a.mu.RLock()
	if cached, ok := a.cache[cacheKey]; ok {
		a.mu.RUnlock()
		info := *cached
		info.Value = val
		return &info, nil
	}
	a.mu.RUnlock()

	if typ.IsVariadic() {
		return nil, fmt.Errorf("variadic constructor %s is not supported", typ)
	}

	info := &ConstructorInfo{
		Type:  typ,
		Value: val,
	}

	if err := a.analyzeReturns(info); err != nil {
		return nil, fmt.Errorf("failed to analyze returns: %w", err)
	}

	info.Parameters = make([]ParameterInfo, typ.NumIn())
	for i := 0; i < typ.NumIn(); i++ {
		paramType := typ.In(i)
		param := ParameterInfo{
			Type:  paramType,
			Index: i,
		}
		if IsClassType(paramType) {
			param.Class = TypeName(paramType)
		}
		info.Parameters[i] = param
	}

	a.mu.Lock()
	a.cache[cacheKey] = info
	a.mu.Unlock()

	return info, nil
}

// analyzeReturns checks the constructor produces exactly one value,
// optionally followed by an error.
func (a *Analyzer) analyzeReturns(info *ConstructorInfo) error {
	fnType := info.Type

	switch fnType.NumOut() {
	case 1:
		if fnType.Out(0) == errType {
			return fmt.Errorf("constructor only returns error")
		}
	case 2:
		if fnType.Out(0) == errType {
			return fmt.Errorf("constructor only returns error")
		}
		if !fnType.Out(1).Implements(errType) {
			return fmt.Errorf("second return value must be error, got %s", fnType.Out(1))
		}
		info.HasErrorReturn = true
	case 0:
		return fmt.Errorf("constructor has no return values")
	default:
		return fmt.Errorf("constructor must return T or (T, error), got %d values", fnType.NumOut())
	}

	info.Result = fnType.Out(0)
	return nil
}

// Clear clears the analysis cache.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	a.cache = make(map[uintptr]*ConstructorInfo)
	a.mu.Unlock()
}

// CacheSize returns the number of cached analyses.
func (a *Analyzer) CacheSize() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}
