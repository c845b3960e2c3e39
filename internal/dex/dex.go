// Package dex wires the catalog, the view transform and the renderer to the
// input controls and the display region.
package dex

import (
	"github.com/meur/minidex/internal/models"
	"github.com/meur/minidex/internal/render"
	"github.com/meur/minidex/internal/view"
)

// Display is the region the rendered cards replace wholesale
type Display interface {
	SetDisplayContent(markup string)
}

// Controls exposes the current value of the search box, the category filter
// and the sort selector
type Controls interface {
	ViewState() models.ViewState
}

// StaticControls is a fixed set of input values
type StaticControls models.ViewState

// ViewState implements Controls
func (s StaticControls) ViewState() models.ViewState {
	return models.ViewState(s)
}

// DisplayFunc adapts a function to the Display interface
type DisplayFunc func(markup string)

// SetDisplayContent implements Display
func (f DisplayFunc) SetDisplayContent(markup string) {
	f(markup)
}

// Pipeline runs filter, sort and render for one catalog.
// It keeps no state between runs apart from the catalog.
type Pipeline struct {
	catalog     *models.Catalog
	transformer *view.Transformer
	renderer    *render.Renderer
}

// NewPipeline creates a Pipeline
func NewPipeline(catalog *models.Catalog, transformer *view.Transformer, renderer *render.Renderer) *Pipeline {
	return &Pipeline{
		catalog:     catalog,
		transformer: transformer,
		renderer:    renderer,
	}
}

// Catalog returns the catalog the pipeline renders
func (p *Pipeline) Catalog() *models.Catalog {
	return p.catalog
}

// Categories returns the catalog categories ordered in the pipeline locale
func (p *Pipeline) Categories() []models.CategoryColor {
	return p.catalog.Categories(p.transformer.Language())
}

// View returns the records visible for state
func (p *Pipeline) View(state models.ViewState) []models.Record {
	return p.transformer.Apply(p.catalog.Records, state)
}

// Run returns the markup of the display region for state
func (p *Pipeline) Run(state models.ViewState) string {
	return p.renderer.Cards(p.View(state))
}

// Bind attaches the pipeline to a set of controls and a display
func (p *Pipeline) Bind(controls Controls, display Display) *Binding {
	return &Binding{pipeline: p, controls: controls, display: display}
}

// Binding is a pipeline attached to input controls and a display region
type Binding struct {
	pipeline *Pipeline
	controls Controls
	display  Display
}

// OnInputChanged re-reads the controls, recomputes the view and replaces the
// whole display content. Call it whenever any control changes.
func (b *Binding) OnInputChanged() {
	b.display.SetDisplayContent(b.pipeline.Run(b.controls.ViewState()))
}
