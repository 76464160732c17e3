package log

// Inner log events.
const (
	EventComponentStarted  = "component_started"
	EventComponentShutdown = "component_shutdown"
	EventStateChanged      = "state_changed"
	EventLinkJoining       = "link_joining"
	EventLinkJoined        = "link_joined"
	EventMeasured          = "measured"
	EventMeasureFailed     = "measure_failed"
	EventPublishFailed     = "publish_failed"
	EventMSShutdown        = "ms_shutdown"
	EventPanic             = "panic"
	EventWSConnAdded       = "ws_conn_added"
	EventWSConnRemoved     = "ws_conn_removed"
)
