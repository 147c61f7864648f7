package odeglue

import (
	"slices"

	"golang.org/x/text/language"
)

// Catalog is the ordered collection of pieces added in one session.
// Display order is insertion order. The only mutations are Append and
// Clear; there is no update or delete by index.
//
// The zero value is an empty catalog with English descriptions.
// A Catalog must not be shared between goroutines; see [Sessions].
type Catalog struct {
	pieces []Piece
	lang   language.Tag
}

// NewCatalog returns an empty catalog whose toolbox describes pieces in lang.
func NewCatalog(lang language.Tag) *Catalog {
	return &Catalog{lang: lang}
}

// Append adds p to the end of the catalog. It always succeeds.
func (c *Catalog) Append(p Piece) {
	c.pieces = append(c.pieces, p)
}

// Clear empties the catalog.
func (c *Catalog) Clear() {
	c.pieces = nil
}

// List returns a snapshot of the pieces in insertion order. Modifying the
// returned slice does not affect the catalog.
func (c *Catalog) List() []Piece {
	return slices.Clone(c.pieces)
}

// Len returns the number of pieces.
func (c *Catalog) Len() int {
	return len(c.pieces)
}

// Language returns the language of descriptions built for this catalog.
func (c *Catalog) Language() language.Tag {
	if c.lang == (language.Tag{}) {
		return language.English
	}
	return c.lang
}

// Toolbox returns a toolbox describing pieces in the catalog language.
func (c *Catalog) Toolbox() Toolbox {
	return NewToolbox(c.Language())
}
