package provider

import "testing"

func TestSniffVideoMime(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "webm magic",
			data: append([]byte{0x1A, 0x45, 0xDF, 0xA3}, make([]byte, 12)...),
			want: "video/webm",
		},
		{
			name: "mp4 ftyp box",
			data: []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00"),
			want: "video/mp4",
		},
		{
			name: "quicktime before generic ftyp",
			data: []byte("\x00\x00\x00\x14ftypqt  \x00\x00\x00\x00"),
			want: "video/quicktime",
		},
		{
			name: "short payload defaults to webm",
			data: []byte{0x00, 0x01},
			want: "video/webm",
		},
		{
			name: "unknown container defaults to webm",
			data: make([]byte, 16),
			want: "video/webm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffVideoMime(tt.data); got != tt.want {
				t.Errorf("SniffVideoMime() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAudioMimeFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"chunk.mp3", "audio/mpeg"},
		{"RECORDING.MP3", "audio/mpeg"},
		{"memo.m4a", "audio/mp4"},
		{"voice.ogg", "audio/ogg"},
		{"stream.webm", "audio/webm"},
		{"take1.wav", "audio/wav"},
		{"noextension", "audio/wav"},
	}

	for _, tt := range tests {
		if got := AudioMimeFromFilename(tt.name); got != tt.want {
			t.Errorf("AudioMimeFromFilename(%q) = %s, want %s", tt.name, got, tt.want)
		}
	}
}
