package inspector

import "errors"

// Degraded rows are logged with one of these sentinels. The engine never
// returns them to the caller.
var (
	ErrUnresolvedCustomizer  = errors.New("inspector: no customizer for field kind")
	ErrIncompatibleInstances = errors.New("inspector: instances share no common class")
	ErrNullInstance          = errors.New("inspector: nil instance in set")
	ErrCycle                 = errors.New("inspector: instanced object already on draw path")
	ErrDepthLimit            = errors.New("inspector: nesting depth limit reached")
	ErrNoContainerAccess     = errors.New("inspector: provider has no container access")
	ErrNoObjectFactory       = errors.New("inspector: no object factory for instanced reference")
)
