package dao

const themeKey = "asa-studio:theme"

// GetTheme returns the stored theme string, defaulting to light.
func (d *Dao) GetTheme() (string, error) {
	v, err := d.Store.Get(themeKey)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "light", nil
	}
	return v, nil
}

func (d *Dao) SetTheme(theme string) error {
	return d.Store.Set(themeKey, theme)
}
