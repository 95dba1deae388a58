package vispipe

// EventType enumerates the notifications an executive emits
type EventType int

const (
	// PreExecuteEvent is emitted before a Stage's first RequestData call of an update
	PreExecuteEvent EventType = iota
	// PostExecuteEvent is emitted after a Stage's last RequestData call of an update
	PostExecuteEvent
	// DataGeneratedEvent is emitted when an output port is marked generated
	DataGeneratedEvent
	// AbortedEvent is emitted when a Stage's execution is aborted
	AbortedEvent
)

func (t EventType) String() string {
	switch t {
	case PreExecuteEvent:
		return "PreExecute"
	case PostExecuteEvent:
		return "PostExecute"
	case DataGeneratedEvent:
		return "DataGenerated"
	case AbortedEvent:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// Event is a notification about a Stage's execution
type Event struct {
	Type      EventType
	Stage     StageID
	Name      string
	Port      int // output port for DataGeneratedEvent, AllPorts otherwise
	Iteration int
}

// EventSink receives Events. It must not block.
type EventSink func(e Event)

// ChannelSink forwards Events to a channel, dropping them if the channel is full
func ChannelSink(ch chan<- Event) EventSink {
	return func(e Event) {
		select {
		case ch <- e:
		default:
		}
	}
}
