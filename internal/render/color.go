package render

import colorful "github.com/lucasb-eyer/go-colorful"

const (
	baseHue    = 210.0
	hueStep    = 15.0
	saturation = 0.70
	lightness  = 0.60

	AxisColor      = "#6b7280"
	GridColor      = "#374151"
	TickLabelColor = "#9ca3af"
	ValueColor     = "#ffffff"
)

// BarColor returns the fill for the bar at index i as a hex string.
func BarColor(i int) string { return ShiftedBarColor(i, 0) }

// ShiftedBarColor is BarColor with the hue rotated by shift degrees.
func ShiftedBarColor(i int, shift float64) string {
	return HueColor(baseHue + float64(i)*hueStep + shift)
}

// HueColor converts a hue in degrees to hex at the chart's saturation and
// lightness.
func HueColor(hue float64) string {
	for hue >= 360 {
		hue -= 360
	}
	for hue < 0 {
		hue += 360
	}
	return colorful.Hsl(hue, saturation, lightness).Clamped().Hex()
}
