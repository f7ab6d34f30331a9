// Package ui draws the board in the terminal and feeds input to the
// controller. Screen-cell to board-square mapping lives entirely here.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/jackyboi/asyncchess/internal/game"
	"github.com/jackyboi/asyncchess/internal/obslog"
)

// tickEvery paces the controller's tick and redraw; polling rate limiting
// happens in the worker, not here.
const tickEvery = 60 * time.Millisecond

type App struct {
	screen tcell.Screen
	ctrl   *game.Controller
	theme  Theme
	log    *zap.Logger

	prevButtons tcell.ButtonMask
}

// New initializes the terminal screen.
func New(ctrl *game.Controller, theme Theme) (*App, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.EnableMouse()
	return &App{screen: s, ctrl: ctrl, theme: theme, log: obslog.L().Named("ui")}, nil
}

// Run drives the frame loop until the user quits. The controller is
// ticked once per frame; input between frames marks the tick as
// interactive through the controller itself.
func (a *App) Run() error {
	defer a.screen.Fini()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.ctrl.Tick()
			banner := ""
			if a.ctrl.Disconnected() {
				banner = "no connection - check the server"
			}
			a.draw(banner)
		case ev := <-events:
			if done := a.handleEvent(ev); done {
				close(quit)
				return nil
			}
		}
	}
}

// Stop asks the frame loop to exit. Safe to call from another goroutine.
func (a *App) Stop() {
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventKey:
		switch {
		case tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC:
			return true
		case tev.Rune() == 'q':
			return true
		case tev.Rune() == 'r':
			a.log.Info("restart requested")
			a.ctrl.Restart()
		}
	case *tcell.EventMouse:
		buttons := tev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && a.prevButtons&tcell.Button1 == 0
		a.prevButtons = buttons
		if pressed {
			x, y := tev.Position()
			if bx, by, ok := toBoardCoord(x, y); ok {
				a.ctrl.Select(bx, by)
			} else {
				a.ctrl.ClearSelection()
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}
