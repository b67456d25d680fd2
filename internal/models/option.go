package models

// Option is a reusable option group: a name (e.g. "color") plus the ordered
// list of selectable values. Value order is preserved as entered by the
// admin; values are unique within a group.
type Option struct {
	ID     string   `json:"id" bson:"_id,omitempty"`
	Name   string   `json:"name" bson:"name"`
	Values []string `json:"values" bson:"values"`
}

// OptionInput carries the mutable option fields for create and update.
type OptionInput struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}
