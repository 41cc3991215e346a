//go:build js && wasm

package browser

import (
	"fmt"
	"syscall/js"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform"
)

type subscription struct {
	kind    platform.EventKind
	handler platform.EventHandler
}

// Window is the current browser tab.
type Window struct {
	window   js.Value
	location js.Value
	history  js.Value
	funcs    map[subscription]js.Func
}

var _ platform.Window = (*Window)(nil)
var _ platform.PushStateSupporter = (*Window)(nil)

// New binds to the global window object.
func New() *Window {
	win := js.Global().Get("window")
	return &Window{
		window:   win,
		location: win.Get("location"),
		history:  win.Get("history"),
		funcs:    make(map[subscription]js.Func),
	}
}

func (w *Window) Href() string {
	return w.location.Get("href").String()
}

func (w *Window) Pathname() string {
	return w.location.Get("pathname").String()
}

func (w *Window) Search() string {
	return w.location.Get("search").String()
}

func (w *Window) SetHash(fragment string) (err error) {
	defer recoverJSError("location.hash", &err)
	w.location.Set("hash", fragment)
	return nil
}

func (w *Window) Replace(url string) (err error) {
	defer recoverJSError("location.replace", &err)
	w.location.Call("replace", url)
	return nil
}

func (w *Window) PushState(state any, url string) (err error) {
	defer recoverJSError("history.pushState", &err)
	w.history.Call("pushState", toJS(state), "", url)
	return nil
}

func (w *Window) ReplaceState(state any, url string) (err error) {
	defer recoverJSError("history.replaceState", &err)
	w.history.Call("replaceState", toJS(state), "", url)
	return nil
}

func (w *Window) Back() (err error) {
	defer recoverJSError("history.back", &err)
	w.history.Call("back")
	return nil
}

// AddEventListener registers handler on window. The same handler and kind
// share one JS function, so a second registration is a no-op like in the DOM.
func (w *Window) AddEventListener(kind platform.EventKind, handler platform.EventHandler) {
	key := subscription{kind: kind, handler: handler}
	if _, ok := w.funcs[key]; ok {
		return
	}

	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		event := platform.Event{Kind: kind}
		if len(args) > 0 && kind == platform.EventPopState {
			event.State = fromJS(args[0].Get("state"))
		}
		handler.HandleEvent(event)
		return nil
	})
	w.funcs[key] = fn
	w.window.Call("addEventListener", string(kind), fn, false)
}

func (w *Window) RemoveEventListener(kind platform.EventKind, handler platform.EventHandler) {
	key := subscription{kind: kind, handler: handler}
	fn, ok := w.funcs[key]
	if !ok {
		return
	}
	w.window.Call("removeEventListener", string(kind), fn, false)
	delete(w.funcs, key)
	fn.Release()
}

// Defer queues fn as a microtask.
func (w *Window) Defer(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	w.window.Call("queueMicrotask", cb)
}

// SupportsPushState reports whether window.history.pushState is callable.
func (w *Window) SupportsPushState() bool {
	return w.history.Truthy() && w.history.Get("pushState").Type() == js.TypeFunction
}

func recoverJSError(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = fmt.Errorf("%s: %w", op, jsErr)
		return
	}
	panic(r)
}

// toJS converts a state payload into a value js.ValueOf accepts.
func toJS(state any) any {
	switch s := state.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(s))
		for k, v := range s {
			out[k] = toJS(v)
		}
		return out
	case string, bool, int, int64, float64:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// fromJS reads a history state object back into Go. null and undefined
// become nil, meaning the entry carries no state.
func fromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeNull, js.TypeUndefined:
		return nil
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	case js.TypeObject:
		keys := js.Global().Get("Object").Call("keys", v)
		out := make(map[string]any, keys.Length())
		for i := 0; i < keys.Length(); i++ {
			k := keys.Index(i).String()
			out[k] = fromJS(v.Get(k))
		}
		return out
	default:
		return nil
	}
}
