package events

import "github.com/atomicstack/tmux-popup-otp/internal/logging"

type DeliverTracer struct{}

var Deliver = DeliverTracer{}

func (DeliverTracer) Start(mode, target string) {
	logging.Trace("deliver.start", map[string]interface{}{"mode": mode, "target": target})
}

func (DeliverTracer) Error(mode string, err error) {
	if err == nil {
		return
	}
	logging.Trace("deliver.error", map[string]interface{}{"mode": mode, "error": err.Error()})
}

func (DeliverTracer) Success(mode, info string) {
	logging.Trace("deliver.success", map[string]interface{}{"mode": mode, "info": info})
}
