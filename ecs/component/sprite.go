package component

import "image"

// Sprite is drawn centered on the entity Transform. The image is converted
// for the GPU by the render system on first use.
type Sprite struct {
	Image   image.Image
	OriginX float64
	OriginY float64
}

var SpriteComponent = NewComponent[Sprite]("sprite")
