package engine

// QuestStatus is the host engine's quest progression state. The numeric
// values are part of the save and template wire format.
type QuestStatus int

const (
	StatusLocked QuestStatus = iota
	StatusAvailableForStart
	StatusStarted
	StatusAvailableForFinish
	StatusSuccess
	StatusFail
	StatusFailRestartable
	StatusMarkedAsFailed
)

var statusNames = map[QuestStatus]string{
	StatusLocked:             "Locked",
	StatusAvailableForStart:  "AvailableForStart",
	StatusStarted:            "Started",
	StatusAvailableForFinish: "AvailableForFinish",
	StatusSuccess:            "Success",
	StatusFail:               "Fail",
	StatusFailRestartable:    "FailRestartable",
	StatusMarkedAsFailed:     "MarkedAsFailed",
}

func (s QuestStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
