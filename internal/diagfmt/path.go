package diagfmt

import "turbalance/internal/source"

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<input>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", baseDir)
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
