package engine

// Profile is the subset of a player save record the pipeline reads and
// rewrites. Storage of the full profile belongs to the host; the pipeline
// only ever mutates these fields.
type Profile struct {
	ID                    string                          `json:"id"`
	Quests                []QuestEntry                    `json:"Quests"`
	TaskConditionCounters map[string]TaskConditionCounter `json:"TaskConditionCounters"`
	DroppedItems          []DroppedItem                   `json:"DroppedItems,omitempty"`
	Dialogues             map[string]Dialogue             `json:"Dialogues,omitempty"`
}

// QuestEntry is one quest-status record in a profile.
type QuestEntry struct {
	QID       string      `json:"qid"`
	Status    QuestStatus `json:"status"`
	StartTime int64       `json:"startTime"`
}

// TaskConditionCounter tracks numeric progress for one condition id.
// SourceID is the owning quest id.
type TaskConditionCounter struct {
	ID       string `json:"id"`
	SourceID string `json:"sourceId"`
	Type     string `json:"type,omitempty"`
	Value    int    `json:"value"`
}

// DroppedItem records a placement-mission drop tied to a quest.
type DroppedItem struct {
	QuestID string `json:"QuestId"`
	ItemID  string `json:"ItemId"`
	ZoneID  string `json:"ZoneId"`
}

// Dialogue is a trader mail thread in a profile.
type Dialogue struct {
	Messages []Message `json:"messages"`
}

// Message is one mail message; TemplateID references a mail locale key.
type Message struct {
	TemplateID string `json:"templateId"`
}

// QuestIndex returns the index of the entry for qid, or -1.
func (p *Profile) QuestIndex(qid string) int {
	for i, q := range p.Quests {
		if q.QID == qid {
			return i
		}
	}
	return -1
}
