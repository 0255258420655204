package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualBusSubscribeDeliversCurrentState(t *testing.T) {
	bus := NewVisualBus()
	bus.Update(func(s *VisualState) { s.Surge = true })

	var got []VisualState
	bus.Subscribe(VisualObserverFunc(func(s VisualState) { got = append(got, s) }))

	assert.Equal(t, []VisualState{{Surge: true}}, got)
}

func TestVisualBusNotifiesOnlyOnChange(t *testing.T) {
	bus := NewVisualBus()

	var got []VisualState
	bus.Subscribe(VisualObserverFunc(func(s VisualState) { got = append(got, s) }))

	bus.Update(func(s *VisualState) { s.Overload = true })
	bus.Update(func(s *VisualState) { s.Overload = true })
	bus.Update(func(s *VisualState) { s.ErrorMode = true })

	assert.Equal(t, []VisualState{
		{},
		{Overload: true},
		{Overload: true, ErrorMode: true},
	}, got)
	assert.Equal(t, VisualState{Overload: true, ErrorMode: true}, bus.State())
}

func TestSectionDisplayLabel(t *testing.T) {
	assert.Equal(t, "HOME", Section{ID: "home"}.DisplayLabel())
	assert.Equal(t, "About Me", Section{ID: "about", Label: "About Me"}.DisplayLabel())
}
