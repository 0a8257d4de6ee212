package calendar

import (
	"fmt"

	"github.com/dukerupert/wallcal/internal/model"
	"github.com/dukerupert/wallcal/internal/persist"
)

func (c *Calendar) Theme() model.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

func (c *Calendar) SetTheme(t model.Theme) error {
	if _, err := model.ParseTheme(string(t)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyTheme(t)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (c *Calendar) ToggleTheme() (model.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.theme.Toggle()
	return t, c.applyTheme(t)
}

func (c *Calendar) applyTheme(t model.Theme) error {
	c.theme = t
	if err := persist.Save(c.storage, persist.KeyTheme, string(t)); err != nil {
		c.logger.Error("persist theme", "error", err)
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}
