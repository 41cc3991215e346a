// Package location reports and drives in-app navigation on top of a browser
// tab's history, whichever mechanism the tab offers.
//
// Two adapters implement the same Location contract:
//
//   - FragmentLocation keeps the logical path in the URL fragment ("#/a/b") and
//     listens for hashchange. It requires the fragment to start with "/" and
//     rewrites it when it does not.
//   - SessionLocation keeps the logical path in the real path and query
//     ("/a/b?x=1") and listens for popstate. It only reports moves between
//     entries it created itself.
//
// # Basic Usage
//
//	loc := location.NewFragment(win, location.Options{})
//
//	l := location.NewListener(func(c location.Change) {
//	    fmt.Println(c.Type, c.Path)
//	})
//	loc.AddListener(l)
//
//	_ = loc.Push("/inbox")           // PUSH /inbox
//	_ = loc.Replace("/inbox?page=2") // REPLACE /inbox?page=2
//	_ = loc.Pop()                    // POP, once the platform has gone back
//
//	loc.RemoveListener(l)
//	loc.Dispose()
//
// # Subscriptions
//
// Each adapter holds at most one platform subscription no matter how many
// listeners it has. The adapter registers itself as the platform.EventHandler
// when the first listener arrives and unregisters when the last one leaves.
// Listeners are notified synchronously, in registration order, from a snapshot
// taken when the round starts. A panicking listener stops the round.
//
// # Fragment Correction
//
// A fragment adapter on a URL like "https://host/app" or "https://host/app#inbox"
// cannot treat the fragment as a path yet. AddListener then replaces the
// fragment with "/" + fragment and registers the listener only after the
// platform reports the corrected URL, checking once per scheduler turn.
// Options.MaxCorrectionTurns bounds that wait.
package location
