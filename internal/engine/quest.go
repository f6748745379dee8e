// Package engine defines the host engine's quest template, locale and player
// profile wire schemas. This is the single canonical representation used by
// the whole pipeline; all format polymorphism is isolated in the JSON codecs
// of Target and Value.
package engine

// Condition parent discriminators used by generated quests.
const (
	ConditionLevel               = "Level"
	ConditionQuest               = "Quest"
	ConditionCounterCreator      = "CounterCreator"
	ConditionHandoverItem        = "HandoverItem"
	ConditionFindItem            = "FindItem"
	ConditionLeaveItemAtLocation = "LeaveItemAtLocation"
	ConditionPlaceBeacon         = "PlaceBeacon"
	ConditionKills               = "Kills"
	ConditionLocation            = "Location"
	ConditionExitStatus          = "ExitStatus"
	ConditionVisitPlace          = "VisitPlace"
	ConditionCompleteCondition   = "CompleteCondition"
)

// Condition is one engine-level predicate in a quest's condition lists.
type Condition struct {
	Parent        string         `json:"_parent"`
	Props         ConditionProps `json:"_props"`
	DynamicLocale bool           `json:"dynamicLocale"`
}

// ConditionProps carries the per-condition payload. Fields not used by a
// given parent type are omitted from the wire encoding.
type ConditionProps struct {
	ID                           string                `json:"id"`
	Index                        int                   `json:"index"`
	ParentID                     string                `json:"parentId"`
	DynamicLocale                bool                  `json:"dynamicLocale"`
	Value                        *Value                `json:"value,omitempty"`
	CompareMethod                string                `json:"compareMethod,omitempty"`
	Target                       *Target               `json:"target,omitempty"`
	Status                       []QuestStatus         `json:"status,omitempty"`
	Counter                      *Counter              `json:"counter,omitempty"`
	Type                         string                `json:"type,omitempty"`
	OneSessionOnly               bool                  `json:"oneSessionOnly"`
	DoNotResetIfCounterCompleted bool                  `json:"doNotResetIfCounterCompleted"`
	OnlyFoundInRaid              bool                  `json:"onlyFoundInRaid"`
	DogtagLevel                  int                   `json:"dogtagLevel"`
	MaxDurability                int                   `json:"maxDurability"`
	MinDurability                int                   `json:"minDurability"`
	PlantTime                    int                   `json:"plantTime,omitempty"`
	ZoneID                       string                `json:"zoneId,omitempty"`
	VisibilityConditions         []VisibilityCondition `json:"visibilityConditions"`
}

// Counter aggregates sub-conditions into a running tally compared against the
// owning condition's value.
type Counter struct {
	ID         string             `json:"id"`
	Conditions []CounterCondition `json:"conditions"`
}

// CounterCondition is one sub-condition inside a counter.
type CounterCondition struct {
	Parent string       `json:"_parent"`
	Props  CounterProps `json:"_props"`
}

// CounterProps is the reduced prop set counter sub-conditions carry.
type CounterProps struct {
	ID            string   `json:"id"`
	Target        Target   `json:"target"`
	CompareMethod string   `json:"compareMethod,omitempty"`
	Value         string   `json:"value,omitempty"`
	Status        []string `json:"status,omitempty"`
	Weapons       []string `json:"weapon,omitempty"`
}

// VisibilityCondition gates a condition's visibility on another condition.
type VisibilityCondition struct {
	Parent string          `json:"_parent"`
	Props  VisibilityProps `json:"_props"`
}

// VisibilityProps references the gating condition by id.
type VisibilityProps struct {
	ID     string `json:"id"`
	Target string `json:"target"`
}

// Conditions groups a quest's three condition lists. Every list is ordered
// and each element's Index equals its position.
type Conditions struct {
	AvailableForStart  []Condition `json:"AvailableForStart"`
	AvailableForFinish []Condition `json:"AvailableForFinish"`
	Fail               []Condition `json:"Fail"`
}

// RewardType discriminates generated rewards.
type RewardType string

const (
	RewardExperience     RewardType = "Experience"
	RewardItem           RewardType = "Item"
	RewardTraderStanding RewardType = "TraderStanding"
)

// Reward is one engine reward entry.
type Reward struct {
	Index  int        `json:"index"`
	ID     string     `json:"id"`
	Type   RewardType `json:"type"`
	Value  string     `json:"value"`
	Target string     `json:"target,omitempty"`
	Items  []Item     `json:"items,omitempty"`
}

// Rewards groups a quest's reward lists by trigger.
type Rewards struct {
	Started []Reward `json:"Started"`
	Success []Reward `json:"Success"`
	Fail    []Reward `json:"Fail"`
}

// Item is one inventory item instance inside an item reward. Build rewards
// produce a tree of instances linked by ParentID/SlotID.
type Item struct {
	ID       string   `json:"_id"`
	Tpl      string   `json:"_tpl"`
	ParentID string   `json:"parentId,omitempty"`
	SlotID   string   `json:"slotId,omitempty"`
	Upd      *ItemUpd `json:"upd,omitempty"`
}

// ItemUpd carries mutable item state; only the stack count is generated.
type ItemUpd struct {
	StackObjectsCount int `json:"StackObjectsCount"`
}

// Quest is a fully generated quest template record.
type Quest struct {
	QuestName                  string     `json:"QuestName"`
	ID                         string     `json:"_id"`
	Image                      string     `json:"image"`
	Type                       string     `json:"type"`
	TraderID                   string     `json:"traderId"`
	Location                   string     `json:"location"`
	Conditions                 Conditions `json:"conditions"`
	Rewards                    Rewards    `json:"rewards"`
	CanShowNotificationsInGame bool       `json:"canShowNotificationsInGame"`
	Description                string     `json:"description"`
	FailMessageText            string     `json:"failMessageText"`
	Name                       string     `json:"name"`
	Note                       string     `json:"note"`
	IsKey                      bool       `json:"isKey"`
	Restartable                bool       `json:"restartable"`
	InstantComplete            bool       `json:"instantComplete"`
	SecretQuest                bool       `json:"secretQuest"`
	StartedMessageText         string     `json:"startedMessageText"`
	SuccessMessageText         string     `json:"successMessageText"`
	TemplateID                 string     `json:"templateId"`
}

// QuestLocale is the per-locale text payload for one quest.
type QuestLocale struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Conditions         map[string]string `json:"conditions"`
	Note               string            `json:"note"`
	FailMessageText    string            `json:"failMessageText"`
	StartedMessageText string            `json:"startedMessageText"`
	SuccessMessageText string            `json:"successMessageText"`
	Location           string            `json:"location"`
}

// LocalePayload is one locale's projection of a quest: the quest text table
// plus the mail templates its message keys point at.
type LocalePayload struct {
	Quest QuestLocale       `json:"quest"`
	Mail  map[string]string `json:"mail"`
}

// GeneratedLocales maps locale names to their payload for one quest.
type GeneratedLocales map[string]LocalePayload
