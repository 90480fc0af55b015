// Package server serves the editable table to web browsers.
//
// GET / returns a self-contained HTML page. The page opens a websocket on
// /ws, and every websocket connection is a separate widget instance with its
// own controller mounted from Config.Args.
//
// # Protocol
//
// All messages are JSON text frames.
//
// Browser to server:
//
//	{"type":"edit","row":1,"col":2,"value":"new text"}
//	{"type":"save"}
//
// Server to browser, at mount and after every applied save:
//
//	{"type":"value","value":[["h1","h2"],["a","b"]]}
//	{"type":"frameHeight","height":154}
//	{"type":"render","html":"<button ...>...</table>"}
//
// Edits are held as pending until a save. Malformed or unknown messages are
// logged and ignored. A save on a disabled table produces no messages.
//
// Every value and frame height is also passed to Config.Sink, so a server
// started with a JSON lines sink streams saved tables to stdout or a file.
//
// # Usage Example
//
//	srv, err := server.New(&server.Config{
//	    Port: 8501,
//	    Args: args,
//	    Sink: sink,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Start blocks until SIGINT/SIGTERM or a fatal error
//	return srv.Start()
//
// # Connection Lifecycle
//
// Each session runs a read loop, which owns the controller, and a write pump,
// which is the only writer on the connection. The write pump pings every
// pingPeriod; a peer that misses pongs for pongWait is dropped. A session
// whose outbound buffer fills is closed.
//
// # Graceful Shutdown
//
// Shutdown stops the listener, closes open sessions, withdraws the mDNS
// advertisement and waits up to 10 seconds for goroutines to finish.
package server
