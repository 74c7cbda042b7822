// Package process terminates browser process trees left behind by the
// chromium backend.
package process
