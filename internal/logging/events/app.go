package events

import "github.com/atomicstack/tmux-popup-otp/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Cancel(filled, total int) {
	logging.Trace("app.cancel", map[string]interface{}{"filled": filled, "total": total})
}
