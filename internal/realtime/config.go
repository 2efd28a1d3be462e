package realtime

const (
	DefaultModel   = "gemini-2.0-flash-live-001"
	DefaultBaseURL = "wss://generativelanguage.googleapis.com/ws"
	DefaultVoice   = "Aoede"

	// Wire formats are fixed by the live protocol: 16 kHz PCM16 up,
	// 24 kHz PCM16 down.
	InputMIMEType = "audio/pcm;rate=16000"
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Voice   string

	// Instructions is the fixed system persona configured at setup time.
	Instructions string
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Voice == "" {
		c.Voice = DefaultVoice
	}
	return c
}
