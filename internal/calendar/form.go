package calendar

import "github.com/dukerupert/wallcal/internal/model"

// BeginEdit points the event form at an existing event.
func (c *Calendar) BeginEdit(id int64) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.events.Get(id)
	if err != nil {
		return model.Event{}, err
	}
	c.editing = &id
	return e, nil
}

// BeginCreate clears the editing hint so the next Submit creates an event.
func (c *Calendar) BeginCreate() {
	c.mu.Lock()
	c.editing = nil
	c.mu.Unlock()
}

// Editing returns the id the form is editing, if any.
func (c *Calendar) Editing() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return 0, false
	}
	return *c.editing, true
}

// Cancel closes the form.
func (c *Calendar) Cancel() {
	c.BeginCreate()
}

// Submit applies the form: it updates the event being edited, or creates a
// new one when nothing is being edited. The hint is cleared on success.
func (c *Calendar) Submit(f model.EventFields) (model.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		e   model.Event
		err error
	)
	if c.editing != nil {
		e, err = c.update(*c.editing, f)
	} else {
		e, err = c.add(f)
	}
	if err != nil {
		return e, err
	}
	c.editing = nil
	return e, nil
}

// Delete removes the event being edited and closes the form. With nothing
// being edited it only closes the form. It reports the id and whether an
// event was removed.
func (c *Calendar) Delete() (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return 0, false, nil
	}
	id := *c.editing
	c.editing = nil
	removed, err := c.remove(id)
	return id, removed, err
}
