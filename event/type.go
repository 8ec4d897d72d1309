package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventContainerReset empties one container and restores its vessel pose
	// Trigger: Death zone, front end key | Consumer: ResetSystem | Payload: *ContainerResetPayload
	EventContainerReset EventType = iota + 1

	// EventRoundReset empties every container and restores every vessel
	// Trigger: Round restart | Consumer: ResetSystem | Payload: nil
	EventRoundReset

	// EventTiltRequest rotates or moves a vessel
	// Trigger: Front end input | Consumer: ControlSystem | Payload: *TiltRequestPayload
	EventTiltRequest
)

// GameEvent is a queued event with the tick it was raised on
type GameEvent struct {
	Type    EventType
	Payload any
	Tick    int64
}

func (t EventType) String() string {
	switch t {
	case EventContainerReset:
		return "container_reset"
	case EventRoundReset:
		return "round_reset"
	case EventTiltRequest:
		return "tilt_request"
	}
	return "unknown"
}
