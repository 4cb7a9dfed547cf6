package ui

import (
	"context"
	"image"
	"image/color"
	"strings"
	"sync"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/theme"
	"go.uber.org/zap"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
)

// TitlePrefix starts the title of every companion window.
const TitlePrefix = "EasyEDA2KiCad Import"

// IsCompanionTitle reports whether a window title belongs to a companion.
func IsCompanionTitle(title string) bool {
	return strings.HasPrefix(title, TitlePrefix)
}

var (
	successColor = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	errorColor   = color.NRGBA{R: 207, G: 34, B: 46, A: 255}
	borderColor  = color.NRGBA{R: 160, G: 164, B: 176, A: 255}
	scrimColor   = color.NRGBA{A: 140}
)

// Companion is the import panel for one schematic editor window, shown as
// a small window of its own.
type Companion struct {
	TargetID string
	Target   string

	panel *panel.Panel
	loop  *Loop
	ctx   context.Context
	state PanelState
	log   *zap.Logger

	mu         sync.Mutex
	window     *app.Window
	invalidate func()

	ops         op.Ops
	gvTheme     *theme.Theme
	partEditor  widget.Editor
	importBtn   widget.Clickable
	okBtn       widget.Clickable
	successIcon *widget.Icon
	errorIcon   *widget.Icon
}

func newCompanion(ctx context.Context, targetID, target string, p *panel.Panel, loop *Loop, log *zap.Logger) *Companion {
	c := &Companion{
		TargetID: targetID,
		Target:   target,
		panel:    p,
		loop:     loop,
		ctx:      ctx,
		log:      log.With(zap.String("window", targetID)),
	}
	c.partEditor.SingleLine = true
	c.partEditor.Submit = true
	return c
}

// WindowTitle is the title given to the companion window.
func (c *Companion) WindowTitle() string {
	return TitlePrefix + " - " + c.Target
}

// State exposes the companion's render state.
func (c *Companion) State() PanelSnapshot {
	return c.state.Snapshot()
}

// Submit runs an import of input on the dispatcher. It reports false when
// an import is already running or a result is still displayed.
func (c *Companion) Submit(input string) bool {
	partID := strings.TrimSpace(input)
	if !c.state.Begin(partID) {
		return false
	}
	c.Invalidate()

	posted := c.loop.Post(func() {
		n := c.panel.Submit(c.ctx, input)
		c.state.Finish(n)
		c.Invalidate()
	})
	if !posted {
		c.state.Finish(panel.Present(partID, ErrLoopStopped))
		c.Invalidate()
	}
	return posted
}

// Dismiss closes the result dialog.
func (c *Companion) Dismiss() {
	c.state.Dismiss()
	c.Invalidate()
}

// Invalidate asks for a redraw.
func (c *Companion) Invalidate() {
	c.mu.Lock()
	invalidate := c.invalidate
	c.mu.Unlock()
	if invalidate != nil {
		invalidate()
	}
}

// Close closes the companion window.
func (c *Companion) Close() {
	c.mu.Lock()
	w := c.window
	c.mu.Unlock()
	if w != nil {
		w.Perform(system.ActionClose)
	}
}

func (c *Companion) attach(w *app.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = w
	c.invalidate = w.Invalidate
}

// Run processes Gio events until the window is closed.
func (c *Companion) Run() error {
	c.gvTheme = theme.NewTheme("", nil, true)
	c.successIcon = makeIcon(c.log, icons.ActionCheckCircle, "success")
	c.errorIcon = makeIcon(c.log, icons.AlertError, "error")

	for {
		switch ev := c.window.Event().(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&c.ops, ev)
			c.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func makeIcon(log *zap.Logger, data []byte, name string) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Warn("failed to load icon", zap.String("icon", name), zap.Error(err))
		return nil
	}
	return icon
}

func (c *Companion) handleEvents(gtx layout.Context) {
	for {
		ev, ok := c.partEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			c.Submit(c.partEditor.Text())
		}
	}
	if c.importBtn.Clicked(gtx) {
		c.Submit(c.partEditor.Text())
	}
	if c.okBtn.Clicked(gtx) {
		c.Dismiss()
	}
}

func (c *Companion) layout(gtx layout.Context) layout.Dimensions {
	c.handleEvents(gtx)
	snap := c.state.Snapshot()

	paint.Fill(gtx.Ops, c.gvTheme.Palette.Bg)

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			if snap.Busy || snap.Notification != nil {
				gtx = gtx.Disabled()
			}
			return c.layoutForm(gtx, snap)
		}),
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			if snap.Notification == nil {
				return layout.Dimensions{}
			}
			return c.layoutNotification(gtx, *snap.Notification)
		}),
	)
}

func (c *Companion) layoutForm(gtx layout.Context, snap PanelSnapshot) layout.Dimensions {
	th := c.gvTheme.Theme
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Body1(th, "LCSC part number").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
					layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
						border := widget.Border{Color: borderColor, CornerRadius: unit.Dp(4), Width: unit.Dp(1)}
						return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							return layout.UniformInset(unit.Dp(8)).Layout(gtx,
								material.Editor(th, &c.partEditor, "e.g. C2040").Layout)
						})
					}),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := "Import"
						if snap.Busy {
							label = "Importing..."
						}
						return material.Button(th, &c.importBtn, label).Layout(gtx)
					}),
				)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				caption := material.Caption(th, c.Target)
				caption.MaxLines = 1
				return caption.Layout(gtx)
			}),
		)
	})
}

// layoutNotification draws the modal result dialog over the form.
func (c *Companion) layoutNotification(gtx layout.Context, n panel.Notification) layout.Dimensions {
	th := c.gvTheme.Theme
	paint.FillShape(gtx.Ops, scrimColor, clip.Rect{Max: gtx.Constraints.Max}.Op())

	icon, iconColor := c.successIcon, successColor
	if n.Level == panel.LevelError {
		icon, iconColor = c.errorIcon, errorColor
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Max.X -= gtx.Dp(unit.Dp(24))
		gtx.Constraints.Min = image.Point{}

		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				rr := gtx.Dp(unit.Dp(8))
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Push(gtx.Ops).Pop()
				paint.Fill(gtx.Ops, c.gvTheme.Palette.Bg)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									if icon == nil {
										return layout.Dimensions{}
									}
									gtx.Constraints.Min.X = gtx.Dp(unit.Dp(20))
									return icon.Layout(gtx, iconColor)
								}),
								layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
								layout.Rigid(material.H6(th, n.Title).Layout),
							)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							msg := material.Body2(th, n.Message)
							msg.MaxLines = 12
							return msg.Layout(gtx)
						}),
						layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.E.Layout(gtx, material.Button(th, &c.okBtn, "OK").Layout)
						}),
					)
				})
			}),
		)
	})
}
