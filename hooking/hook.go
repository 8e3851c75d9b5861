// Package hooking lets observers attach to traversal objects without the
// traversal code knowing who is listening. Recorders and monitors register
// hooks on a traverser; the traverser invokes them at well-known positions.
package hooking

// A HookPos names a position in the observed object's lifecycle at which
// hooks fire.
type HookPos struct {
	Name string
}

// HookCtx carries the information about the site where a hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable is an object that hooks can be attached to.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)
}

// A Hook is a piece of program that a hookable object invokes.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides the hook bookkeeping for types that implement
// Hookable. Embed it and call InvokeHook at each hook position.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of registered hooks. Hook positions in hot
// loops should skip building a HookCtx when it is zero.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook triggers all registered hooks in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
