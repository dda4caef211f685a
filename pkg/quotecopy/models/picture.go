package models

// Picture is a raster image anchored in a sheet drawing.
type Picture struct {
	// Name is the drawing object name (e.g. "Picture 1").
	Name string `json:"name"`
	// Cell is the top-left anchor cell (e.g. "A1").
	Cell string `json:"cell"`
	// W is the picture width in pixels (0 if unknown).
	W int `json:"w,omitempty"`
	// H is the picture height in pixels (0 if unknown).
	H int `json:"h,omitempty"`
	// Media is the package entry holding the image bytes (e.g. "xl/media/image1.png").
	Media string `json:"media,omitempty"`
}
