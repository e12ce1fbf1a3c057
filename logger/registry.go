package logger

import (
	"sync"
)

// registry is the global named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers a set of named loggers derived from the global
// logger. Init refreshes the registry, so the call order between the two
// does not matter.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}

// refresh re-derives every registered logger from the current global logger.
// Loggers registered before Init would otherwise keep the unconfigured
// default output and level.
func refresh() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for name := range registry.loggers {
		registry.loggers[name] = GetGlobalLogger().WithComponent(name)
	}
}
