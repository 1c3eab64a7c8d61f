//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// NoticeVariant selects how a user-visible notice is presented.
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice is a short user-visible message raised by auth and submission flows.
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// InfoNotice builds a default-variant notice.
func InfoNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDefault}
}

// ErrorNotice builds a destructive-variant notice.
func ErrorNotice(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: NoticeDestructive}
}
