package resource

import "sync"

// Notifier surfaces the outcome of a request to the user.
type Notifier interface {
	Success(msg string)
	Failure(action string, err error)
}

// Discard drops all notifications.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string)        {}
func (discard) Failure(string, error) {}

// Notice is one recorded notification.
type Notice struct {
	Action  string
	Message string
	Err     error
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Failures  []Notice
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Failure(action string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, Notice{Action: action, Message: err.Error(), Err: err})
}
