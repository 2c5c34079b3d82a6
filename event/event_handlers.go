package event

import (
	"bneibrit/common"
)

/*
return nil if not support
*/
type EventHandler func(e *EventRecord) *EventHandleResult

type EventHandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

var EventHandlers []EventHandler

var InvokeHandlersFunc = invokeHandlers

func invokeHandlers(record *EventRecord) []EventHandleResult {
	results := []EventHandleResult{}
	for _, handler := range EventHandlers {
		common.Log.Debug("pre handle event ", record.Event)
		r := handler(record)

		if r == nil {
			continue
		}

		results = append(results, *r)

		if r.Success {
			common.Log.Info("post handle event. ", r)
		} else {
			common.Log.Error("post handler error. ", r)
		}
	}
	return results
}

// AuditLogHandler writes every event to the service log.
func AuditLogHandler(e *EventRecord) *EventHandleResult {
	entry := common.Log.WithField("source", e.SourceType).WithField("sourceId", e.SourceId.String()).
		WithField("category", string(e.EventCategory))
	for _, p := range e.UpdatedProperties {
		entry = entry.WithField(p.PropertyName, p.OldValue+" -> "+p.NewValue)
	}
	entry.Info(e.SourceDesc)
	return &EventHandleResult{Success: true, HandlerIdentifier: "audit-log"}
}

// Succeeded reports whether no handler failed.
func Succeeded(results []EventHandleResult) bool {
	for _, r := range results {
		if !r.Success {
			return false
		}
	}
	return true
}
