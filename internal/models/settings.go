package models

// Settings is the single site-settings document. Only the WhatsApp contact
// number is stored today; orders cannot be placed while it is empty.
type Settings struct {
	WhatsApp string `json:"whatsapp" bson:"whatsapp"`
}
