package draw

// BlockUpperHalf paints the top pixel of a cell in the foreground color and
// the bottom one in the background color.
const BlockUpperHalf = '▀'

// SGR sequences.
const (
	sgrForeground = "\033[38;2;"
	sgrBackground = "\033[48;2;"
	sgrReset      = "\033[0m"
	sgrDim        = "\033[2m"
	sgrBold       = "\033[1m"
)

// Bold wraps s in bold text attributes.
func Bold(s string) string {
	return sgrBold + s + sgrReset
}

// Dim wraps s in faint text attributes.
func Dim(s string) string {
	return sgrDim + s + sgrReset
}
