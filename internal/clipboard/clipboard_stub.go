//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

func ensureInit() error { return errUnsupported }

func writePNG([]byte) error { return errUnsupported }

func writeText(string) error { return errUnsupported }

func readText() (string, error) { return "", errUnsupported }
