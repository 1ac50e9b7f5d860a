package models

// Settings is the flat user settings object.
type Settings struct {
	DisplayName       string `json:"display_name"`
	AnimationsEnabled bool   `json:"animations_enabled"`
	Language          string `json:"language"`
}

// DefaultSettings returns the settings used before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:       "",
		AnimationsEnabled: true,
		Language:          "en",
	}
}
