package events

import "github.com/atomicstack/tmux-popup-otp/internal/logging"

// Payloads carry indexes and counts only; the code itself is never traced.

type CellTracer struct{}

type CodeTracer struct{}

type CommandTracer struct{}

var (
	Cell    = CellTracer{}
	Code    = CodeTracer{}
	Command = CommandTracer{}
)

func (CellTracer) Input(slot, accepted, focus int) {
	logging.Trace("cell.input", map[string]interface{}{"slot": slot, "accepted": accepted, "focus": focus})
}

func (CellTracer) Paste(slot, accepted, focus int, source string) {
	logging.Trace("cell.paste", map[string]interface{}{
		"slot":     slot,
		"accepted": accepted,
		"focus":    focus,
		"source":   source,
	})
}

func (CellTracer) Key(slot int, key string, focus int, suppress bool) {
	logging.Trace("cell.key", map[string]interface{}{
		"slot":     slot,
		"key":      key,
		"focus":    focus,
		"suppress": suppress,
	})
}

func (CellTracer) Focus(index int) {
	logging.Trace("cell.focus", map[string]interface{}{"index": index})
}

func (CellTracer) FocusDropped(index int) {
	logging.Trace("cell.focus-dropped", map[string]interface{}{"index": index})
}

func (CellTracer) Cleared(total int) {
	logging.Trace("cell.clear", map[string]interface{}{"total": total})
}

func (CodeTracer) Complete(complete bool, filled int) {
	logging.Trace("code.complete", map[string]interface{}{"complete": complete, "filled": filled})
}

func (CodeTracer) Submit(length int) {
	logging.Trace("code.submit", map[string]interface{}{"length": length})
}

func (CodeTracer) Rejected(filled, total int) {
	logging.Trace("code.rejected", map[string]interface{}{"filled": filled, "total": total})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
