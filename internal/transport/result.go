package transport

// Result is what a read worker hands to the core: either a complete
// inbound message, a recoverable error (the worker keeps running), a
// fatal error (the worker is about to exit), or a shutdown notice.
type Result struct {
	Data     []byte
	Err      error
	Fatal    bool
	Shutdown bool
}

func dataResult(b []byte) Result        { return Result{Data: b} }
func recoverableResult(err error) Result { return Result{Err: err} }
func fatalResult(err error) Result      { return Result{Err: err, Fatal: true} }
func shutdownResult() Result            { return Result{Shutdown: true} }
