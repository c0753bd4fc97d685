package controller

// Strategy identifies how a request kind is served. It is resolved once in
// New and never changes for the lifetime of a Controller.
type Strategy int

const (
	// StrategyNone means no mechanism is configured; requests fail closed
	StrategyNone Strategy = iota
	// StrategyPool serves requests from the configured device pool
	StrategyPool
	// StrategyFunction serves requests by calling the configured function
	StrategyFunction
)

func (s Strategy) String() string {
	switch s {
	case StrategyPool:
		return "pool"
	case StrategyFunction:
		return "function"
	default:
		return "none"
	}
}

// resolveStrategy picks the pool when it has devices, then the function
func resolveStrategy(poolSize int, hasFunc bool) Strategy {
	if poolSize > 0 {
		return StrategyPool
	}
	if hasFunc {
		return StrategyFunction
	}
	return StrategyNone
}
