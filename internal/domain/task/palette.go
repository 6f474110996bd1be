package task

// palette is the fixed set of label colors. New labels cycle through it
// by per-project label count so color assignment is reproducible.
var palette = []string{
	"#61bd4f", // green
	"#f2d600", // yellow
	"#ff9f1a", // orange
	"#eb5a46", // red
	"#c377e0", // purple
	"#0079bf", // blue
	"#00c2e0", // sky
	"#51e898", // lime
	"#ff78cb", // pink
	"#344563", // slate
}

// PaletteColor returns the color for the nth label created in a project.
func PaletteColor(labelCount int) string {
	if labelCount < 0 {
		labelCount = 0
	}
	return palette[labelCount%len(palette)]
}
