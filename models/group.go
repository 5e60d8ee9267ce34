package models

// GroupColor - цветовая метка группы (girone).
type GroupColor string

const (
	ColorRed    GroupColor = "red"
	ColorBlue   GroupColor = "blue"
	ColorGreen  GroupColor = "green"
	ColorYellow GroupColor = "yellow"
	ColorPurple GroupColor = "purple"
)

func (c GroupColor) Valid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple:
		return true
	}
	return false
}

// Group - группа кругового этапа.
type Group struct {
	ID           int        `json:"id" db:"id"`
	PlaygroundID int        `json:"playground_id" db:"playground_id"`
	Name         string     `json:"name" db:"name"`
	Color        GroupColor `json:"color" db:"color"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
