package provider

import "strings"

// SniffVideoMime inspects container magic bytes. Browser MediaRecorder
// output is WebM, so that is the default when nothing matches. QuickTime
// must be checked before the generic ftyp box or it would read as MP4.
func SniffVideoMime(data []byte) string {
	if len(data) >= 12 {
		switch {
		case string(data[4:12]) == "ftypqt  ":
			return "video/quicktime"
		case string(data[4:8]) == "ftyp":
			return "video/mp4"
		case data[0] == 0x1A && data[1] == 0x45 && data[2] == 0xDF && data[3] == 0xA3:
			return "video/webm"
		}
	}
	return "video/webm"
}

// AudioMimeFromFilename maps common recording extensions to MIME types.
// Unknown extensions fall back to WAV.
func AudioMimeFromFilename(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(lower, ".m4a"):
		return "audio/mp4"
	case strings.HasSuffix(lower, ".ogg"):
		return "audio/ogg"
	case strings.HasSuffix(lower, ".webm"):
		return "audio/webm"
	default:
		return "audio/wav"
	}
}
