// Package panel holds the controller behind the variant picker surface.
//
// The controller owns explicit view state (current selection, the variant
// list on display) and mediates every user action through the store, the
// switcher, and the permission gate. Presentation is delegated to a Renderer
// so terminal and test front-ends stay thin.
package panel
