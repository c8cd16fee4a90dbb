// Package session provides server-side sessions holding byte values keyed by
// string, with pluggable storage and token transports.
//
// # Architecture
//
// A Manager resolves the session token through a Transport (cookie or
// header), loads the session from a Store (memory or Redis) and persists it
// again when it changed. Expiry slides on every save and is capped by the
// configured maximum lifetime.
//
//	┌────────┐   token   ┌────────────┐
//	│ Client │ ────────► │  Transport │
//	└────────┘           └────────────┘
//	       ▲                   │
//	       │                   ▼
//	┌─────────────────────────────────┐
//	│      Manager  ◄──  Feature      │ (one per request)
//	└─────────────────────────────────┘
//	       │   Get / Save / Delete
//	       ▼
//	┌────────┐
//	│ Store  │ (memory, redis)
//	└────────┘
//
// # Usage
//
//	manager := session.New(session.WithIdleTimeout(time.Hour))
//	defer manager.Close()
//
//	mux.Handle("/", manager.Middleware(handler))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    sess, err := session.FromContext(r.Context())
//	    if err != nil {
//	        // middleware not installed or store failure
//	    }
//	    sess.Set("theme", []byte("dark"))
//	}
//
// Sessions created during a request are persisted only once they hold a
// value, so anonymous traffic does not fill the store.
//
// Header transport for API clients:
//
//	manager := session.New(
//	    session.WithTransport(session.NewHeaderTransport("Authorization")),
//	)
//
// # Configuration
//
// Config carries env tags (SESSION_COOKIE_NAME, SESSION_IDLE_TIMEOUT,
// SESSION_MAX_LIFETIME, SESSION_CLEANUP_INTERVAL, SESSION_SECURE_COOKIES)
// and can be loaded with pkg/config and passed to NewFromConfig.
//
// # Error Handling
//
//   - ErrNotEnabled       – no session middleware for the request
//   - ErrSessionNotFound  – no session associated with the token
//   - ErrSessionExpired   – session has passed its expiry
//   - ErrCorruptSession   – stored session could not be decoded
//
// Missing, expired and corrupt sessions are replaced with a new one
// transparently. Store failures surface to the caller.
package session
