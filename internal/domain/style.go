package domain

// Style - параметры отрисовки полигона
type Style struct {
	StrokeColor  string  `json:"stroke_color"`
	StrokeWeight int     `json:"stroke_weight"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
}
